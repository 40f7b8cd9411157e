package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/repository"
)

var _ repository.PriceOverrideRepository = (*PriceOverrideRepo)(nil)

const priceOverrideColumns = `id, product_id, scope, customer_id, fixed_price_pl, fixed_price_eu,
	discount_pct_pl, discount_pct_eu, created_at, updated_at`

// PriceOverrideRepo implementación de PriceOverrideRepository (usable con pool o tx).
type PriceOverrideRepo struct {
	q Querier
}

// NewPriceOverrideRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceOverrideRepository(q Querier) *PriceOverrideRepo {
	return &PriceOverrideRepo{q: q}
}

// Upsert inserta o reemplaza la regla de (producto, alcance, cliente). Si ya existía, o.ID y
// o.CreatedAt quedan con los valores guardados.
func (r *PriceOverrideRepo) Upsert(ctx context.Context, o *entity.PriceOverride) error {
	query := `
		INSERT INTO price_overrides (` + priceOverrideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (product_id, scope, (COALESCE(customer_id, '')))
		DO UPDATE SET
			fixed_price_pl = EXCLUDED.fixed_price_pl,
			fixed_price_eu = EXCLUDED.fixed_price_eu,
			discount_pct_pl = EXCLUDED.discount_pct_pl,
			discount_pct_eu = EXCLUDED.discount_pct_eu,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		o.ID, o.ProductID, string(o.Scope), nullString(o.CustomerID), o.FixedPricePL, o.FixedPriceEU,
		o.DiscountPctPL, o.DiscountPctEU, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: producto o cliente de la regla", domain.ErrNotFound)
		case isCheckViolation(err):
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("upsert price override: %w", err)
	}
	return nil
}

// Delete elimina una regla por ID. domain.ErrNotFound si no existía.
func (r *PriceOverrideRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM price_overrides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete price override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProduct reglas del producto: primero las regionales, luego las de cliente.
func (r *PriceOverrideRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.PriceOverride, error) {
	query := `
		SELECT ` + priceOverrideColumns + `
		FROM price_overrides WHERE product_id = $1
		ORDER BY scope DESC, customer_id NULLS FIRST`
	return r.list(ctx, query, productID)
}

// ListVisible reglas CUSTOMER del cliente más todas las REGIONAL de los productos dados.
func (r *PriceOverrideRepo) ListVisible(ctx context.Context, customerID string, productIDs []string) ([]*entity.PriceOverride, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + priceOverrideColumns + `
		FROM price_overrides
		WHERE product_id = ANY($2)
		  AND (scope = 'REGIONAL' OR (scope = 'CUSTOMER' AND customer_id = $1))
		ORDER BY product_id, scope`
	return r.list(ctx, query, customerID, productIDs)
}

func (r *PriceOverrideRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PriceOverride, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price overrides: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceOverride
	for rows.Next() {
		var (
			o          entity.PriceOverride
			scope      string
			customerID *string
			pctPL      *decimal.Decimal
			pctEU      *decimal.Decimal
		)
		if err := rows.Scan(
			&o.ID, &o.ProductID, &scope, &customerID, &o.FixedPricePL, &o.FixedPriceEU,
			&pctPL, &pctEU, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan price override: %w", err)
		}
		o.Scope = entity.OverrideScope(scope)
		o.CustomerID = derefString(customerID)
		o.DiscountPctPL = pctPL
		o.DiscountPctEU = pctEU
		list = append(list, &o)
	}
	return list, rows.Err()
}

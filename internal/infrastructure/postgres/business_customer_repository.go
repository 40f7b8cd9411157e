package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/repository"
)

var _ repository.BusinessCustomerRepository = (*BusinessCustomerRepo)(nil)

const businessCustomerColumns = `id, company_name, country_code, tax_id, region, status, vies_validated,
	verified_name, verified_address, review_reason, email, phone, created_at, updated_at`

// BusinessCustomerRepo implementación de BusinessCustomerRepository (usable con pool o tx).
type BusinessCustomerRepo struct {
	q Querier
}

// NewBusinessCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessCustomerRepository(q Querier) *BusinessCustomerRepo {
	return &BusinessCustomerRepo{q: q}
}

// Create persiste un nuevo cliente. (country_code, tax_id) es único.
func (r *BusinessCustomerRepo) Create(ctx context.Context, c *entity.BusinessCustomer) error {
	query := `
		INSERT INTO business_customers (` + businessCustomerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyName, c.CountryCode, c.TaxID, string(c.Region), string(c.Status), c.VIESValidated,
		c.VerifiedName, c.VerifiedAddress, c.ReviewReason, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *BusinessCustomerRepo) GetByID(ctx context.Context, id string) (*entity.BusinessCustomer, error) {
	query := `SELECT ` + businessCustomerColumns + ` FROM business_customers WHERE id = $1`
	c, err := scanBusinessCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business customer: %w", err)
	}
	return c, nil
}

// GetByTaxID obtiene un cliente por país y número normalizado.
func (r *BusinessCustomerRepo) GetByTaxID(ctx context.Context, countryCode, taxID string) (*entity.BusinessCustomer, error) {
	query := `SELECT ` + businessCustomerColumns + ` FROM business_customers WHERE country_code = $1 AND tax_id = $2`
	c, err := scanBusinessCustomer(r.q.QueryRow(ctx, query, countryCode, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business customer by tax_id: %w", err)
	}
	return c, nil
}

// ListByStatus lista clientes por estado, más antiguos primero.
func (r *BusinessCustomerRepo) ListByStatus(ctx context.Context, status entity.CustomerStatus, limit, offset int) ([]*entity.BusinessCustomer, error) {
	query := `
		SELECT ` + businessCustomerColumns + `
		FROM business_customers WHERE status = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.BusinessCustomer
	for rows.Next() {
		c, err := scanBusinessCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// TransitionStatus UPDATE condicionado al estado actual; dos revisores concurrentes no pueden
// aplicar ambos su decisión.
func (r *BusinessCustomerRepo) TransitionStatus(ctx context.Context, id string, from, to entity.CustomerStatus) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE business_customers SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to),
	)
	if err != nil {
		return false, fmt.Errorf("update business customer status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBusinessCustomer(row pgx.Row) (*entity.BusinessCustomer, error) {
	var c entity.BusinessCustomer
	var region, status string
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.CountryCode, &c.TaxID, &region, &status, &c.VIESValidated,
		&c.VerifiedName, &c.VerifiedAddress, &c.ReviewReason, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Region = entity.Region(region)
	c.Status = entity.CustomerStatus(status)
	return &c, nil
}

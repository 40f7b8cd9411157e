// Package overrides mantiene las reglas de precio que define el staff por producto.
package overrides

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-b2b-api/internal/application/dto"
	"github.com/jhoicas/tienda-b2b-api/internal/domain"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
	"github.com/jhoicas/tienda-b2b-api/internal/domain/repository"
	"github.com/jhoicas/tienda-b2b-api/pkg/logger"
)

// maxDiscountDecimals decimales que admite un porcentaje de descuento.
const maxDiscountDecimals = 2

// UseCase casos de uso de mantenimiento de reglas de precio.
type UseCase struct {
	repo      repository.PriceOverrideRepository
	products  repository.ProductRepository
	customers repository.BusinessCustomerRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(
	repo repository.PriceOverrideRepository,
	products repository.ProductRepository,
	customers repository.BusinessCustomerRepository,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:      repo,
		products:  products,
		customers: customers,
		log:       log.Component("overrides"),
		now:       time.Now,
	}
}

// Upsert crea o reemplaza la regla de (producto, alcance, cliente).
func (uc *UseCase) Upsert(ctx context.Context, in dto.UpsertOverrideRequest) (*dto.OverrideResponse, error) {
	o, err := uc.build(in)
	if err != nil {
		return nil, err
	}

	product, err := uc.products.GetByID(ctx, o.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, o.ProductID)
	}
	if o.Scope == entity.ScopeCustomer {
		customer, err := uc.customers.GetByID(ctx, o.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.CustomerID)
		}
	}

	if err := uc.repo.Upsert(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("override_id", o.ID).
		Str("product_id", o.ProductID).
		Str("scope", string(o.Scope)).
		Str("customer_id", o.CustomerID).
		Msg("regla de precio guardada")
	return toOverrideResponse(o), nil
}

// build valida la entrada y arma la entidad. El ID definitivo lo fija el repositorio si la regla ya existía.
func (uc *UseCase) build(in dto.UpsertOverrideRequest) (*entity.PriceOverride, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	scope := entity.OverrideScope(strings.ToUpper(strings.TrimSpace(in.Scope)))
	customerID := strings.TrimSpace(in.CustomerID)
	switch scope {
	case entity.ScopeCustomer:
		if customerID == "" {
			return nil, fmt.Errorf("%w: una regla CUSTOMER requiere customer_id", domain.ErrInvalidInput)
		}
	case entity.ScopeRegional:
		if customerID != "" {
			return nil, fmt.Errorf("%w: una regla REGIONAL no admite customer_id", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: scope %q desconocido", domain.ErrInvalidInput, in.Scope)
	}

	if in.FixedPricePL == nil && in.FixedPriceEU == nil && in.DiscountPctPL == nil && in.DiscountPctEU == nil {
		return nil, fmt.Errorf("%w: la regla no define ningún precio ni descuento", domain.ErrInvalidInput)
	}
	fixed := []struct {
		name  string
		value *int64
	}{
		{"fixed_price_pl", in.FixedPricePL},
		{"fixed_price_eu", in.FixedPriceEU},
	}
	for _, f := range fixed {
		if f.value != nil && *f.value <= 0 {
			return nil, fmt.Errorf("%w: %s debe ser mayor que cero", domain.ErrInvalidInput, f.name)
		}
	}
	discounts := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"discount_pct_pl", in.DiscountPctPL},
		{"discount_pct_eu", in.DiscountPctEU},
	}
	for _, d := range discounts {
		if d.value == nil {
			continue
		}
		if !d.value.IsPositive() || d.value.GreaterThan(entity.MaxDiscountPct) {
			return nil, fmt.Errorf("%w: %s debe estar en (0, 100]", domain.ErrInvalidInput, d.name)
		}
		// la columna es NUMERIC(5,2): más decimales se redondearían al guardar
		if !d.value.Equal(d.value.Round(maxDiscountDecimals)) {
			return nil, fmt.Errorf("%w: %s admite como máximo %d decimales", domain.ErrInvalidInput, d.name, maxDiscountDecimals)
		}
	}

	now := uc.now()
	return &entity.PriceOverride{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Scope:         scope,
		CustomerID:    customerID,
		FixedPricePL:  in.FixedPricePL,
		FixedPriceEU:  in.FixedPriceEU,
		DiscountPctPL: in.DiscountPctPL,
		DiscountPctEU: in.DiscountPctEU,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Delete elimina una regla. domain.ErrNotFound si no existe.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("override_id", id).Msg("regla de precio eliminada")
	return nil
}

// ListByProduct todas las reglas del producto (ambos alcances).
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]*dto.OverrideResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OverrideResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOverrideResponse(o))
	}
	return out, nil
}

func toOverrideResponse(o *entity.PriceOverride) *dto.OverrideResponse {
	return &dto.OverrideResponse{
		ID:            o.ID,
		ProductID:     o.ProductID,
		Scope:         string(o.Scope),
		CustomerID:    o.CustomerID,
		FixedPricePL:  o.FixedPricePL,
		FixedPriceEU:  o.FixedPriceEU,
		DiscountPctPL: o.DiscountPctPL,
		DiscountPctEU: o.DiscountPctEU,
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

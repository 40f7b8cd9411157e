package repository

import (
	"context"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// PriceOverrideRepository define el puerto de persistencia para reglas de precio.
type PriceOverrideRepository interface {
	// Upsert crea o reemplaza la regla identificada por (ProductID, Scope, CustomerID).
	Upsert(ctx context.Context, override *entity.PriceOverride) error
	Delete(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.PriceOverride, error)

	// ListVisible devuelve las reglas que aplican al cliente para los productos dados:
	// sus reglas CUSTOMER más todas las REGIONAL.
	ListVisible(ctx context.Context, customerID string, productIDs []string) ([]*entity.PriceOverride, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// BusinessCustomerRepository define el puerto de persistencia para clientes B2B.
type BusinessCustomerRepository interface {
	Create(ctx context.Context, customer *entity.BusinessCustomer) error
	GetByID(ctx context.Context, id string) (*entity.BusinessCustomer, error)
	GetByTaxID(ctx context.Context, countryCode, taxID string) (*entity.BusinessCustomer, error)
	ListByStatus(ctx context.Context, status entity.CustomerStatus, limit, offset int) ([]*entity.BusinessCustomer, error)

	// TransitionStatus cambia el estado solo si el actual es from; devuelve false si no aplicó.
	// La región nunca se actualiza.
	TransitionStatus(ctx context.Context, id string, from, to entity.CustomerStatus) (bool, error)
}

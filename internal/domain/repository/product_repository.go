package repository

import (
	"context"

	"github.com/jhoicas/tienda-b2b-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo (la gestión del catálogo es externa).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}

package repository

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// ProductRepository defines product catalog operations against the API.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductCache is the local read cache for the catalog, used when the API
// is unreachable.
type ProductCache interface {
	ReplaceAll(products []entity.Product) error
	List() ([]entity.Product, error)
	Clear() error
}

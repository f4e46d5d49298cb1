package api

import (
	"context"
	"fmt"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// ProductRepository implements repository.ProductRepository against the API.
type ProductRepository struct {
	client *Client
}

// NewProductRepository creates a new product repository.
func NewProductRepository(client *Client) repository.ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return getList[entity.Product](ctx, r.client, "/products/")
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	if err := r.client.get(ctx, fmt.Sprintf("/products/%d/", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var created entity.Product
	if err := r.client.post(ctx, "/products/", product, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var updated entity.Product
	if err := r.client.patch(ctx, fmt.Sprintf("/products/%d/", product.ID), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, fmt.Sprintf("/products/%d/", id))
}

package api

import (
	"context"
	"fmt"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// ShopRepository implements repository.ShopRepository against the API.
type ShopRepository struct {
	client *Client
}

// NewShopRepository creates a new shop repository.
func NewShopRepository(client *Client) repository.ShopRepository {
	return &ShopRepository{client: client}
}

func (r *ShopRepository) UpdateConfig(ctx context.Context, shopID int64, config entity.ShopConfig) (*entity.Shop, error) {
	payload := map[string]any{"config": config}
	var shop entity.Shop
	if err := r.client.patch(ctx, fmt.Sprintf("/shops/%d/", shopID), payload, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) UpdateProfile(ctx context.Context, shopID int64, fields map[string]any) (*entity.Shop, error) {
	var shop entity.Shop
	if err := r.client.patch(ctx, fmt.Sprintf("/shops/%d/", shopID), fields, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

package repository

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// ShopRepository defines shop profile operations against the API.
type ShopRepository interface {
	// UpdateConfig patches the shop's config object and returns the
	// updated profile.
	UpdateConfig(ctx context.Context, shopID int64, config entity.ShopConfig) (*entity.Shop, error)
	// UpdateProfile patches top-level profile fields (name, address,
	// contact details) and returns the updated profile.
	UpdateProfile(ctx context.Context, shopID int64, fields map[string]any) (*entity.Shop, error)
}

// ShopCache is the locally persisted shop profile. Saves notify
// subscribers so every component re-reads a consistent snapshot after a
// settings change.
type ShopCache interface {
	Get() (*entity.Shop, error)
	Put(shop *entity.Shop) error
	Clear() error
	// Subscribe returns a channel that receives a signal after every Put.
	// The channel is closed when the cache is closed.
	Subscribe() <-chan struct{}
}

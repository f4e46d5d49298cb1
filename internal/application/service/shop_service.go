package service

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// ShopService manages the shop profile and its settings. Every successful
// update is written back to the local cache, whose Subscribe channel lets
// long-lived components pick up the change without restarting.
type ShopService struct {
	shopRepo repository.ShopRepository
	cache    repository.ShopCache
}

// NewShopService creates a new shop service.
func NewShopService(shopRepo repository.ShopRepository, cache repository.ShopCache) *ShopService {
	return &ShopService{shopRepo: shopRepo, cache: cache}
}

// Current returns the cached shop profile.
func (s *ShopService) Current() (*entity.Shop, error) {
	shop, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, apperror.ErrShopUnavailable
	}
	return shop, nil
}

// Watch returns a channel signalled after every profile update.
func (s *ShopService) Watch() <-chan struct{} {
	return s.cache.Subscribe()
}

// UpdateConfig applies a mutation to the shop's config and persists it.
// The mutation runs on a copy of the cached config so a failed PATCH
// leaves the local snapshot untouched.
func (s *ShopService) UpdateConfig(ctx context.Context, mutate func(*entity.ShopConfig)) (*entity.Shop, error) {
	shop, err := s.Current()
	if err != nil {
		return nil, err
	}

	config := shop.Config
	mutate(&config)

	updated, err := s.shopRepo.UpdateConfig(ctx, shop.ID, config)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateProfile patches top-level profile fields and persists the result.
func (s *ShopService) UpdateProfile(ctx context.Context, fields map[string]any) (*entity.Shop, error) {
	shop, err := s.Current()
	if err != nil {
		return nil, err
	}

	updated, err := s.shopRepo.UpdateProfile(ctx, shop.ID, fields)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

package service

import (
	"context"
	"log"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
	"github.com/Naveenv26/mobile-bill/pkg/apperror"
)

// CatalogService serves the product catalog: API first, local cache as a
// fallback when the network is down. Writes always go to the API; the
// cache is refreshed from successful reads only.
type CatalogService struct {
	products repository.ProductRepository
	cache    repository.ProductCache
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, cache repository.ProductCache) *CatalogService {
	return &CatalogService{products: products, cache: cache}
}

// List fetches the catalog from the API and refreshes the local cache.
// On a network error only, the cached copy is returned instead; API
// errors (auth, validation) pass through unchanged.
func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	items, err := s.products.List(ctx)
	if err != nil {
		if apperror.IsNetwork(err) {
			cached, cacheErr := s.cache.List()
			if cacheErr == nil && len(cached) > 0 {
				log.Printf("catalog: API unreachable, serving %d cached products", len(cached))
				return cached, nil
			}
		}
		return nil, err
	}

	if err := s.cache.ReplaceAll(items); err != nil {
		log.Printf("catalog: failed to refresh product cache: %v", err)
	}
	return items, nil
}

// Create adds a product and refreshes the cached catalog.
func (s *CatalogService) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return created, nil
}

// Update modifies a product and refreshes the cached catalog.
func (s *CatalogService) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return updated, nil
}

// Delete removes a product and refreshes the cached catalog.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *CatalogService) refresh(ctx context.Context) {
	items, err := s.products.List(ctx)
	if err != nil {
		log.Printf("catalog: post-write cache refresh failed: %v", err)
		return
	}
	if err := s.cache.ReplaceAll(items); err != nil {
		log.Printf("catalog: failed to refresh product cache: %v", err)
	}
}

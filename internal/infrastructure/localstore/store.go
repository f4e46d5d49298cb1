// Package localstore is the client's offline cache: a small sqlite
// database holding the product catalog and the shop profile snapshot.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

const cacheFile = "cache.db"

// Store owns the sqlite cache database.
type Store struct {
	db       *gorm.DB
	products *ProductCache
	shop     *ShopCache
}

// Open opens (creating if needed) the cache database under the given
// storage directory and migrates its tables.
func Open(storagePath string) (*Store, error) {
	if err := os.MkdirAll(storagePath, 0o700); err != nil {
		return nil, fmt.Errorf("localstore: failed to create storage dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(storagePath, cacheFile)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("localstore: failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&entity.Product{}, &shopRecord{}); err != nil {
		return nil, fmt.Errorf("localstore: failed to migrate cache schema: %w", err)
	}

	return &Store{
		db:       db,
		products: &ProductCache{db: db},
		shop:     newShopCache(db),
	}, nil
}

// Products returns the catalog cache.
func (s *Store) Products() *ProductCache {
	return s.products
}

// Shop returns the observable shop profile cache.
func (s *Store) Shop() *ShopCache {
	return s.shop
}

// Close closes the underlying database and all shop subscriptions.
func (s *Store) Close() error {
	s.shop.close()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ProductCache is the local read copy of the catalog, refreshed after
// every successful list from the API and served when the API is down.
type ProductCache struct {
	db *gorm.DB
}

// ReplaceAll swaps the cached catalog for the given products.
func (c *ProductCache) ReplaceAll(products []entity.Product) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Product{}).Error; err != nil {
			return fmt.Errorf("localstore: failed to clear product cache: %w", err)
		}
		if len(products) == 0 {
			return nil
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("localstore: failed to store products: %w", err)
		}
		return nil
	})
}

// List returns the cached catalog ordered by name.
func (c *ProductCache) List() ([]entity.Product, error) {
	var products []entity.Product
	if err := c.db.Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("localstore: failed to read product cache: %w", err)
	}
	return products, nil
}

// Clear empties the catalog cache.
func (c *ProductCache) Clear() error {
	if err := c.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Product{}).Error; err != nil {
		return fmt.Errorf("localstore: failed to clear product cache: %w", err)
	}
	return nil
}

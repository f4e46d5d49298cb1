package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// shopRecord is the single-row table holding the shop profile snapshot.
type shopRecord struct {
	ID        int64  `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (shopRecord) TableName() string {
	return "cached_shop"
}

// ShopCache is an explicit observable store for the shop profile. Every
// save notifies subscribers, so components referencing shop data re-read a
// consistent snapshot after a settings change instead of listening for an
// ambient global event.
type ShopCache struct {
	db *gorm.DB

	mu     sync.Mutex
	subs   []chan struct{}
	closed bool
}

func newShopCache(db *gorm.DB) *ShopCache {
	return &ShopCache{db: db}
}

// Get returns the cached shop profile, or nil when none is stored.
func (c *ShopCache) Get() (*entity.Shop, error) {
	var record shopRecord
	err := c.db.First(&record, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: failed to read shop cache: %w", err)
	}

	var shop entity.Shop
	if err := json.Unmarshal(record.Data, &shop); err != nil {
		return nil, fmt.Errorf("localstore: corrupt shop cache: %w", err)
	}
	return &shop, nil
}

// Put stores the shop profile and notifies all subscribers.
func (c *ShopCache) Put(shop *entity.Shop) error {
	data, err := json.Marshal(shop)
	if err != nil {
		return fmt.Errorf("localstore: failed to encode shop profile: %w", err)
	}

	record := shopRecord{ID: 1, Data: data}
	if err := c.db.Save(&record).Error; err != nil {
		return fmt.Errorf("localstore: failed to store shop profile: %w", err)
	}

	c.notify()
	return nil
}

// Clear removes the cached profile. Subscribers are notified so they drop
// stale shop data immediately (logout, session expiry).
func (c *ShopCache) Clear() error {
	if err := c.db.Delete(&shopRecord{}, 1).Error; err != nil {
		return fmt.Errorf("localstore: failed to clear shop cache: %w", err)
	}
	c.notify()
	return nil
}

// Subscribe returns a channel signalled after every save or clear. The
// channel has a buffer of one: a slow reader coalesces bursts instead of
// blocking writers.
func (c *ShopCache) Subscribe() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{}, 1)
	if c.closed {
		close(ch)
		return ch
	}
	c.subs = append(c.subs, ch)
	return ch
}

func (c *ShopCache) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *ShopCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

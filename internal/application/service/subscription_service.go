package service

import (
	"context"
	"sync"
	"time"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// currentTTL bounds how stale a cached subscription may be before the
// next feature check re-fetches it.
const currentTTL = time.Minute

// SubscriptionService exposes plans, the active subscription and feature
// gates. The current subscription is memoized briefly so repeated feature
// checks within one interaction hit the network once.
type SubscriptionService struct {
	repo repository.SubscriptionRepository

	mu        sync.Mutex
	current   *entity.UserSubscription
	fetchedAt time.Time
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(repo repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

// Plans lists the available subscription plans.
func (s *SubscriptionService) Plans(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	return s.repo.Plans(ctx)
}

// Current returns the active subscription, re-fetching when the memoized
// copy is older than a minute.
func (s *SubscriptionService) Current(ctx context.Context) (*entity.UserSubscription, error) {
	s.mu.Lock()
	if s.current != nil && time.Since(s.fetchedAt) < currentTTL {
		sub := s.current
		s.mu.Unlock()
		return sub, nil
	}
	s.mu.Unlock()

	sub, err := s.repo.Current(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sub
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return sub, nil
}

// HasFeature reports whether the active subscription includes a feature.
// No subscription means no paid features.
func (s *SubscriptionService) HasFeature(ctx context.Context, name string) (bool, error) {
	sub, err := s.Current(ctx)
	if err != nil {
		return false, err
	}
	return sub.HasFeature(name), nil
}

// CreateOrder asks the backend to open a payment order for a plan.
func (s *SubscriptionService) CreateOrder(ctx context.Context, planID int64) (*entity.PaymentOrder, error) {
	return s.repo.CreateOrder(ctx, planID)
}

// VerifyPayment forwards the gateway callback fields to the backend. On
// success the memoized subscription is replaced so new entitlements apply
// immediately.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, verification *entity.PaymentVerification) (*entity.UserSubscription, error) {
	sub, err := s.repo.VerifyPayment(ctx, verification)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = sub
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return sub, nil
}

// Invalidate drops the memoized subscription so the next check re-fetches.
func (s *SubscriptionService) Invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/enum"
)

type fakeSubRepo struct {
	current      *entity.UserSubscription
	currentCalls int
	verified     *entity.UserSubscription
}

func (f *fakeSubRepo) Plans(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	return nil, nil
}

func (f *fakeSubRepo) Current(ctx context.Context) (*entity.UserSubscription, error) {
	f.currentCalls++
	return f.current, nil
}

func (f *fakeSubRepo) CreateOrder(ctx context.Context, planID int64) (*entity.PaymentOrder, error) {
	return &entity.PaymentOrder{OrderID: "order_1", PlanID: planID}, nil
}

func (f *fakeSubRepo) VerifyPayment(ctx context.Context, v *entity.PaymentVerification) (*entity.UserSubscription, error) {
	return f.verified, nil
}

func proSubscription() *entity.UserSubscription {
	return &entity.UserSubscription{
		ID:       1,
		IsActive: true,
		PlanType: enum.PlanTypePro,
		Plan: &entity.SubscriptionPlan{
			ID:       2,
			PlanType: enum.PlanTypePro,
			Features: entity.FeatureMap{
				"billing":            true,
				"reports":            true,
				"export":             false,
				"max_bills_per_week": float64(-1),
			},
		},
	}
}

func TestHasFeatureResolvesAgainstPlan(t *testing.T) {
	repo := &fakeSubRepo{current: proSubscription()}
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	for name, want := range map[string]bool{
		"billing": true,
		"reports": true,
		"export":  false,
		"unknown": false,
		// -1 is the unlimited marker and counts as enabled.
		"max_bills_per_week": true,
	} {
		got, err := svc.HasFeature(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "feature %s", name)
	}

	// All checks above shared one memoized fetch.
	assert.Equal(t, 1, repo.currentCalls)
}

func TestHasFeatureInactiveSubscription(t *testing.T) {
	sub := proSubscription()
	sub.IsActive = false
	svc := NewSubscriptionService(&fakeSubRepo{current: sub})

	got, err := svc.HasFeature(context.Background(), "billing")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasFeatureNoPlan(t *testing.T) {
	svc := NewSubscriptionService(&fakeSubRepo{current: &entity.UserSubscription{IsActive: true}})
	got, err := svc.HasFeature(context.Background(), "billing")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestVerifyPaymentReplacesMemoizedSubscription(t *testing.T) {
	free := &entity.UserSubscription{
		IsActive: true,
		Plan:     &entity.SubscriptionPlan{Features: entity.FeatureMap{"billing": true}},
	}
	repo := &fakeSubRepo{current: free, verified: proSubscription()}
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	got, err := svc.HasFeature(ctx, "reports")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = svc.VerifyPayment(ctx, &entity.PaymentVerification{})
	require.NoError(t, err)

	// The new entitlements apply without waiting out the memoization TTL.
	got, err = svc.HasFeature(ctx, "reports")
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, repo.currentCalls)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	repo := &fakeSubRepo{current: proSubscription()}
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	require.NoError(t, err)
	svc.Invalidate()
	_, err = svc.Current(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.currentCalls)
}

package api

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
	"github.com/Naveenv26/mobile-bill/internal/domain/repository"
)

// SubscriptionRepository implements repository.SubscriptionRepository
// against the API.
type SubscriptionRepository struct {
	client *Client
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(client *Client) repository.SubscriptionRepository {
	return &SubscriptionRepository{client: client}
}

func (r *SubscriptionRepository) Plans(ctx context.Context) ([]entity.SubscriptionPlan, error) {
	return getList[entity.SubscriptionPlan](ctx, r.client, "/subscriptions/plans/")
}

func (r *SubscriptionRepository) Current(ctx context.Context) (*entity.UserSubscription, error) {
	var sub entity.UserSubscription
	if err := r.client.get(ctx, "/subscriptions/current/", &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) CreateOrder(ctx context.Context, planID int64) (*entity.PaymentOrder, error) {
	payload := map[string]int64{"plan_id": planID}
	var order entity.PaymentOrder
	if err := r.client.post(ctx, "/subscriptions/order/", payload, &order, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *SubscriptionRepository) VerifyPayment(ctx context.Context, verification *entity.PaymentVerification) (*entity.UserSubscription, error) {
	var sub entity.UserSubscription
	if err := r.client.post(ctx, "/subscriptions/verify/", verification, &sub, nil); err != nil {
		return nil, err
	}
	return &sub, nil
}

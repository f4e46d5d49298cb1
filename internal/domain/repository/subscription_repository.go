package repository

import (
	"context"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// SubscriptionRepository defines subscription and payment operations
// against the API. The gateway's own protocol is out of scope: the client
// only creates orders through the backend and forwards callback fields to
// the verification endpoint.
type SubscriptionRepository interface {
	Plans(ctx context.Context) ([]entity.SubscriptionPlan, error)
	Current(ctx context.Context) (*entity.UserSubscription, error)
	CreateOrder(ctx context.Context, planID int64) (*entity.PaymentOrder, error)
	VerifyPayment(ctx context.Context, verification *entity.PaymentVerification) (*entity.UserSubscription, error)
}

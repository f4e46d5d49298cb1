package entity

import "github.com/Naveenv26/mobile-bill/internal/domain/enum"

// SubscriptionPlan is one purchasable tier.
type SubscriptionPlan struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	PlanType     enum.PlanType `json:"plan_type"`
	Duration     string        `json:"duration"`
	Price        Decimal       `json:"price"`
	DurationDays int           `json:"duration_days"`
	Features     FeatureMap    `json:"features"`
	IsActive     bool          `json:"is_active"`
}

// FeatureMap is the plan's feature flags. Values are booleans for on/off
// features and numbers for limits (-1 means unlimited).
type FeatureMap map[string]any

// Has reports whether the named feature is enabled. Absent features are
// disabled; numeric limits count as enabled unless zero.
func (f FeatureMap) Has(name string) bool {
	v, ok := f[name]
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return false
	}
}

// Limit returns the numeric limit for the named feature, or 0 when absent.
// A limit of -1 means unlimited.
func (f FeatureMap) Limit(name string) int {
	if val, ok := f[name].(float64); ok {
		return int(val)
	}
	return 0
}

// UserSubscription is the shop's current subscription state.
type UserSubscription struct {
	ID            int64             `json:"id"`
	Plan          *SubscriptionPlan `json:"plan,omitempty"`
	PlanType      enum.PlanType     `json:"plan_type"`
	DaysRemaining int               `json:"days_remaining"`
	IsTrial       bool              `json:"is_trial"`
	IsActive      bool              `json:"is_active"`
}

// HasFeature resolves a feature flag against the active plan. No plan
// means no features.
func (s *UserSubscription) HasFeature(name string) bool {
	if s == nil || !s.IsActive || s.Plan == nil {
		return false
	}
	return s.Plan.Features.Has(name)
}

// PaymentOrder is the gateway order created by the backend before checkout.
type PaymentOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   Decimal `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	PlanID   int64   `json:"plan_id"`
}

// PaymentVerification carries the gateway callback fields forwarded to the
// backend verification endpoint.
type PaymentVerification struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

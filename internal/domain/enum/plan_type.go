package enum

// PlanType is the subscription tier identifier.
type PlanType string

const (
	PlanTypeFree  PlanType = "FREE"
	PlanTypeBasic PlanType = "BASIC"
	PlanTypePro   PlanType = "PRO"
)

// IsPaid reports whether the plan tier is a paying one.
func (p PlanType) IsPaid() bool {
	return p == PlanTypeBasic || p == PlanTypePro
}

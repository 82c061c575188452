package valueobjects

import (
	"errors"
	"fmt"
)

// ErrInvalidPlanTier is returned when a plan tier is not recognized.
var ErrInvalidPlanTier = errors.New("invalid plan tier")

// PlanTier represents the tier of a subscription plan
type PlanTier string

const (
	// TierGrowth is the full-featured tier with access to the module catalog
	TierGrowth PlanTier = "growth"
	// TierStarter is the entry tier; module add-ons cannot be attached to it
	TierStarter PlanTier = "starter"
)

var ValidTiers = map[PlanTier]bool{
	TierGrowth:  true,
	TierStarter: true,
}

// NewPlanTier creates a PlanTier from a string
func NewPlanTier(s string) (PlanTier, error) {
	tier := PlanTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("%w: %s, must be 'growth' or 'starter'", ErrInvalidPlanTier, s)
	}
	return tier, nil
}

// IsValid checks if the plan tier is valid
func (t PlanTier) IsValid() bool {
	return ValidTiers[t]
}

// String returns the string representation of the plan tier
func (t PlanTier) String() string {
	return string(t)
}

// AllowsModules reports whether module add-ons can be attached to this tier.
func (t PlanTier) AllowsModules() bool {
	return t == TierGrowth
}

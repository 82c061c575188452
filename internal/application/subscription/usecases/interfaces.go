package usecases

import (
	"context"
	"time"

	"github.com/servio-inc/servio/internal/domain/subscription"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
)

// PaymentVerifier confirms a transaction reference with the payment
// collaborator before any state change is applied.
type PaymentVerifier interface {
	// Verify confirms that the reference corresponds to a captured payment
	// of at least expectedAmount cents. A reference that cannot be confirmed
	// returns a payment verification error.
	Verify(ctx context.Context, reference string, expectedAmount int64) error
}

// StatusSnapshot is the cacheable answer to a subscription status query.
type StatusSnapshot struct {
	BusinessID     uint                  `json:"business_id"`
	SID            string                `json:"sid,omitempty"`
	Status         vo.SubscriptionStatus `json:"status"`
	PlanTier       string                `json:"plan_tier,omitempty"`
	Cycle          string                `json:"cycle,omitempty"`
	StartDate      *time.Time            `json:"start_date,omitempty"`
	EndDate        *time.Time            `json:"end_date,omitempty"`
	AmountPaid     int64                 `json:"amount_paid,omitempty"`
	Grants         []GrantSnapshot       `json:"modules"`
	EvaluatedAt    time.Time             `json:"evaluated_at"`
	OperatorBypass bool                  `json:"operator_bypass,omitempty"`
}

// GrantSnapshot is one module grant inside a status snapshot.
type GrantSnapshot struct {
	ModuleCode string     `json:"module_code"`
	IsActive   bool       `json:"is_active"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Entitled   bool       `json:"entitled"`
}

// StatusCache caches status snapshots with explicit invalidation. Every
// write path that changes a subscription or its grants must invalidate the
// business's entry.
type StatusCache interface {
	Get(ctx context.Context, businessID uint) (*StatusSnapshot, error)
	Set(ctx context.Context, businessID uint, snapshot *StatusSnapshot) error
	Invalidate(ctx context.Context, businessID uint) error
}

// CommissionAccrual records the commission owed for an accepted payment.
// Implementations must be no-ops when the event fails eligibility.
type CommissionAccrual interface {
	Accrue(ctx context.Context, sub *subscription.Subscription, reference string, amount int64, durationDays int, paidAt time.Time) error
}

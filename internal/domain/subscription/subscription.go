// Package subscription holds the subscription lifecycle aggregate, the
// module grant entity and the append-only payment ledger. Lifecycle state is
// stored coarsely and refined on read: grace period and expiry are derived
// from the end date, never written back by a query.
package subscription

import (
	"fmt"
	"time"

	cvo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
)

// Subscription is the aggregate root for a business's billing lifecycle.
// Exactly one non-cancelled subscription is current per business.
type Subscription struct {
	id            uint
	sid           string
	businessID    uint
	planTier      cvo.PlanTier
	cycle         cvo.BillingCycle
	status        vo.SubscriptionStatus
	startDate     time.Time
	endDate       time.Time
	amountPaid    int64
	lastReference string
	installerID   *uint
	cancelledAt   *time.Time
	cancelReason  *string
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewTrialSubscription starts a business on a trial window. The trial has no
// billing cycle until the first payment lands.
func NewTrialSubscription(sid string, businessID uint, tier cvo.PlanTier, installerID *uint, trialDays int, now time.Time) (*Subscription, error) {
	if err := validateNew(sid, businessID, tier); err != nil {
		return nil, err
	}
	if trialDays <= 0 {
		return nil, fmt.Errorf("%w: trial days %d", ErrInvalidDuration, trialDays)
	}

	return &Subscription{
		sid:         sid,
		businessID:  businessID,
		planTier:    tier,
		status:      vo.StatusTrialing,
		startDate:   now,
		endDate:     now.AddDate(0, 0, trialDays),
		installerID: installerID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// NewPendingSubscription registers a business that skipped the trial and
// will pay immediately. The end date stays zero until activation.
func NewPendingSubscription(sid string, businessID uint, tier cvo.PlanTier, installerID *uint, now time.Time) (*Subscription, error) {
	if err := validateNew(sid, businessID, tier); err != nil {
		return nil, err
	}

	return &Subscription{
		sid:         sid,
		businessID:  businessID,
		planTier:    tier,
		status:      vo.StatusPendingPayment,
		startDate:   now,
		installerID: installerID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func validateNew(sid string, businessID uint, tier cvo.PlanTier) error {
	if sid == "" {
		return fmt.Errorf("subscription sid is required")
	}
	if businessID == 0 {
		return fmt.Errorf("business ID is required")
	}
	if !tier.IsValid() {
		return fmt.Errorf("%w: %s", cvo.ErrInvalidPlanTier, tier)
	}
	return nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id uint,
	sid string,
	businessID uint,
	planTier cvo.PlanTier,
	cycle cvo.BillingCycle,
	status vo.SubscriptionStatus,
	startDate, endDate time.Time,
	amountPaid int64,
	lastReference string,
	installerID *uint,
	cancelledAt *time.Time,
	cancelReason *string,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if !vo.StorableStatuses[status] {
		return nil, fmt.Errorf("invalid stored subscription status: %s", status)
	}

	return &Subscription{
		id:            id,
		sid:           sid,
		businessID:    businessID,
		planTier:      planTier,
		cycle:         cycle,
		status:        status,
		startDate:     startDate,
		endDate:       endDate,
		amountPaid:    amountPaid,
		lastReference: lastReference,
		installerID:   installerID,
		cancelledAt:   cancelledAt,
		cancelReason:  cancelReason,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                    { return s.id }
func (s *Subscription) SID() string                 { return s.sid }
func (s *Subscription) BusinessID() uint            { return s.businessID }
func (s *Subscription) PlanTier() cvo.PlanTier      { return s.planTier }
func (s *Subscription) Cycle() cvo.BillingCycle     { return s.cycle }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time        { return s.startDate }
func (s *Subscription) EndDate() time.Time          { return s.endDate }
func (s *Subscription) AmountPaid() int64           { return s.amountPaid }
func (s *Subscription) LastReference() string       { return s.lastReference }
func (s *Subscription) InstallerID() *uint          { return s.installerID }
func (s *Subscription) CancelledAt() *time.Time     { return s.cancelledAt }
func (s *Subscription) CancelReason() *string       { return s.cancelReason }
func (s *Subscription) Version() int                { return s.version }
func (s *Subscription) CreatedAt() time.Time        { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time        { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// ActivateWithPayment applies a verified payment confirmation. The end date
// is extended from now by the paid cycle's duration, not from the previous
// end date. Reference uniqueness is enforced by the payment ledger, not
// here.
func (s *Subscription) ActivateWithPayment(reference string, amount int64, cycle cvo.BillingCycle, now time.Time) error {
	if reference == "" {
		return ErrReferenceRequired
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	if !cycle.IsValid() {
		return fmt.Errorf("%w: %s", cvo.ErrInvalidBillingCycle, cycle)
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}

	s.status = vo.StatusActive
	s.cycle = cycle
	s.endDate = cycle.NextExpiry(now)
	s.amountPaid = amount
	s.lastReference = reference
	s.updatedAt = now
	s.version++

	return nil
}

// ActivateForDays is the manual admin renewal path: a fixed duration and
// amount without a gateway-confirmed cycle. Reference uniqueness still
// applies.
func (s *Subscription) ActivateForDays(reference string, amount int64, durationDays int, now time.Time) error {
	if reference == "" {
		return ErrReferenceRequired
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	if durationDays <= 0 {
		return fmt.Errorf("%w: %d days", ErrInvalidDuration, durationDays)
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}

	s.status = vo.StatusActive
	s.endDate = now.AddDate(0, 0, durationDays)
	s.amountPaid = amount
	s.lastReference = reference
	s.updatedAt = now
	s.version++

	return nil
}

// Cancel moves the subscription into its terminal state. Cancelling an
// already cancelled subscription is a no-op.
func (s *Subscription) Cancel(reason string, now time.Time) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if reason == "" {
		return fmt.Errorf("cancel reason is required")
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}

	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.cancelReason = &reason
	s.updatedAt = now
	s.version++

	return nil
}

// EffectiveStatus evaluates the stored status against the clock. Trials and
// active subscriptions past their end date degrade to grace period, then to
// expired once the grace window also elapses. The stored row is untouched.
func (s *Subscription) EffectiveStatus(now time.Time, graceDays int) vo.SubscriptionStatus {
	switch s.status {
	case vo.StatusCancelled, vo.StatusPendingPayment:
		return s.status
	}

	if !now.After(s.endDate) {
		return s.status
	}
	graceEnd := s.endDate.AddDate(0, 0, graceDays)
	if !now.After(graceEnd) {
		return vo.StatusGracePeriod
	}
	return vo.StatusExpired
}

// IsEntitled reports whether entitlements are honored at the given instant.
func (s *Subscription) IsEntitled(now time.Time, graceDays int) bool {
	return s.EffectiveStatus(now, graceDays).IsEntitled()
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.businessID == 0 {
		return fmt.Errorf("business ID is required")
	}
	if !vo.StorableStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if !s.endDate.IsZero() && s.endDate.Before(s.startDate) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

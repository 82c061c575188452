package valueobjects

// SubscriptionStatus is the lifecycle state of a subscription. GracePeriod
// and Expired are derived on read from the stored end date; they are never
// written back by a status query.
type SubscriptionStatus string

const (
	StatusPendingPayment SubscriptionStatus = "pending_payment"
	StatusTrialing       SubscriptionStatus = "trialing"
	StatusActive         SubscriptionStatus = "active"
	StatusGracePeriod    SubscriptionStatus = "grace_period"
	StatusExpired        SubscriptionStatus = "expired"
	StatusCancelled      SubscriptionStatus = "cancelled"

	// StatusNone is reported for a business with no subscription row. It is
	// never stored.
	StatusNone SubscriptionStatus = "none"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsEntitled reports whether the status still honors module entitlements.
// Trialing counts deliberately: a trial business runs the product exactly as
// a paying one would until the trial ends. Grace period keeps entitlements
// alive pending renewal.
func (s SubscriptionStatus) IsEntitled() bool {
	return s == StatusActive || s == StatusTrialing || s == StatusGracePeriod
}

// IsTerminal reports whether no further transition is possible.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPendingPayment: {StatusActive, StatusExpired, StatusCancelled},
		StatusTrialing:       {StatusActive, StatusGracePeriod, StatusExpired, StatusCancelled},
		StatusActive:         {StatusActive, StatusGracePeriod, StatusExpired, StatusCancelled},
		StatusGracePeriod:    {StatusActive, StatusExpired, StatusCancelled},
		StatusExpired:        {StatusActive, StatusCancelled},
		StatusCancelled:      {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPendingPayment: true,
	StatusTrialing:       true,
	StatusActive:         true,
	StatusGracePeriod:    true,
	StatusExpired:        true,
	StatusCancelled:      true,
}

// StorableStatuses are the statuses a subscription row may carry at rest.
// Grace period and expiry are evaluated lazily against the end date.
var StorableStatuses = map[SubscriptionStatus]bool{
	StatusPendingPayment: true,
	StatusTrialing:       true,
	StatusActive:         true,
	StatusCancelled:      true,
}

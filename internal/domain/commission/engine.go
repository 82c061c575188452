package commission

import (
	"time"

	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/id"
)

// PaymentEvent is the slice of an accepted payment the engine needs.
// FirstPayment marks the business's first-ever accepted payment;
// OnboardedAt is the date of that first payment, used for the commission
// duration window on renewals.
type PaymentEvent struct {
	BusinessID   uint
	InstallerID  *uint
	Reference    string
	Amount       int64
	DurationDays int
	PaidAt       time.Time
	FirstPayment bool
	OnboardedAt  *time.Time
}

// Engine computes installer commissions. It is a pure evaluation over the
// policy and one payment event; the caller persists the record and must
// invoke the engine at most once per transaction reference.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate returns the commission record owed for the event, or eligible
// false when the event earns nothing. Ineligibility is a normal outcome,
// not an error.
func (e *Engine) Evaluate(policy *Policy, event PaymentEvent) (*Record, bool, error) {
	if policy == nil || event.InstallerID == nil || *event.InstallerID == 0 {
		return nil, false, nil
	}

	if event.FirstPayment {
		return e.buildRecord(event, TypeOnboarding, policy.OnboardingRate())
	}

	if !e.renewalEligible(policy, event) {
		return nil, false, nil
	}
	return e.buildRecord(event, TypeRenewal, policy.RenewalRate())
}

func (e *Engine) renewalEligible(policy *Policy, event PaymentEvent) bool {
	if !policy.EnableRenewalCommission() {
		return false
	}
	if event.DurationDays < policy.MinRenewalDays() {
		return false
	}
	if policy.CommissionDurationDays() > 0 {
		if event.OnboardedAt == nil {
			return false
		}
		elapsed := biztime.DaysBetween(*event.OnboardedAt, event.PaidAt)
		if elapsed > policy.CommissionDurationDays() {
			return false
		}
	}
	return true
}

func (e *Engine) buildRecord(event PaymentEvent, commissionType Type, rate int) (*Record, bool, error) {
	amount := commissionAmount(event.Amount, rate)
	cid, err := id.GenerateWithPrefix(id.PrefixCommission, id.DefaultLength)
	if err != nil {
		return nil, false, err
	}

	record, err := NewRecord(cid, *event.InstallerID, event.BusinessID, commissionType, amount, event.Reference, event.PaidAt)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// commissionAmount applies a whole-percent rate to an amount in cents,
// rounding half up.
func commissionAmount(amount int64, rate int) int64 {
	return (amount*int64(rate) + 50) / 100
}

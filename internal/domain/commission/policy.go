// Package commission holds the installer payout rules: the global
// commission policy, the commission record and the pure evaluation engine.
// Failing eligibility is a normal outcome, never an error.
package commission

import (
	"time"
)

// Policy is the single global payout configuration, admin-editable.
// Rates are whole percentages. MinRenewalDays of 0 means no minimum cycle
// length; CommissionDurationDays of 0 means renewals pay out for the
// lifetime of the business.
type Policy struct {
	id                      uint
	onboardingRate          int
	renewalRate             int
	enableRenewalCommission bool
	minRenewalDays          int
	commissionDurationDays  int
	updatedBy               *uint
	createdAt               time.Time
	updatedAt               time.Time
}

// NewPolicy creates a policy with validated rates and windows.
func NewPolicy(onboardingRate, renewalRate int, enableRenewal bool, minRenewalDays, commissionDurationDays int, now time.Time) (*Policy, error) {
	if err := validatePolicy(onboardingRate, renewalRate, minRenewalDays, commissionDurationDays); err != nil {
		return nil, err
	}

	return &Policy{
		onboardingRate:          onboardingRate,
		renewalRate:             renewalRate,
		enableRenewalCommission: enableRenewal,
		minRenewalDays:          minRenewalDays,
		commissionDurationDays:  commissionDurationDays,
		createdAt:               now,
		updatedAt:               now,
	}, nil
}

// DefaultPolicy is the policy applied before an admin configures one:
// onboarding pays 10%, renewals are disabled.
func DefaultPolicy(now time.Time) *Policy {
	return &Policy{
		onboardingRate: 10,
		createdAt:      now,
		updatedAt:      now,
	}
}

// ReconstructPolicy rebuilds a policy from persistence.
func ReconstructPolicy(id uint, onboardingRate, renewalRate int, enableRenewal bool, minRenewalDays, commissionDurationDays int, updatedBy *uint, createdAt, updatedAt time.Time) (*Policy, error) {
	if err := validatePolicy(onboardingRate, renewalRate, minRenewalDays, commissionDurationDays); err != nil {
		return nil, err
	}

	return &Policy{
		id:                      id,
		onboardingRate:          onboardingRate,
		renewalRate:             renewalRate,
		enableRenewalCommission: enableRenewal,
		minRenewalDays:          minRenewalDays,
		commissionDurationDays:  commissionDurationDays,
		updatedBy:               updatedBy,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
	}, nil
}

func validatePolicy(onboardingRate, renewalRate, minRenewalDays, commissionDurationDays int) error {
	if onboardingRate < 0 || onboardingRate > 100 {
		return ErrInvalidRate
	}
	if renewalRate < 0 || renewalRate > 100 {
		return ErrInvalidRate
	}
	if minRenewalDays < 0 || commissionDurationDays < 0 {
		return ErrInvalidDays
	}
	return nil
}

func (p *Policy) ID() uint                      { return p.id }
func (p *Policy) OnboardingRate() int           { return p.onboardingRate }
func (p *Policy) RenewalRate() int              { return p.renewalRate }
func (p *Policy) EnableRenewalCommission() bool { return p.enableRenewalCommission }
func (p *Policy) MinRenewalDays() int           { return p.minRenewalDays }
func (p *Policy) CommissionDurationDays() int   { return p.commissionDurationDays }
func (p *Policy) UpdatedBy() *uint              { return p.updatedBy }
func (p *Policy) CreatedAt() time.Time          { return p.createdAt }
func (p *Policy) UpdatedAt() time.Time          { return p.updatedAt }

// Update replaces all tunable fields at once.
func (p *Policy) Update(onboardingRate, renewalRate int, enableRenewal bool, minRenewalDays, commissionDurationDays int, updatedBy *uint, now time.Time) error {
	if err := validatePolicy(onboardingRate, renewalRate, minRenewalDays, commissionDurationDays); err != nil {
		return err
	}

	p.onboardingRate = onboardingRate
	p.renewalRate = renewalRate
	p.enableRenewalCommission = enableRenewal
	p.minRenewalDays = minRenewalDays
	p.commissionDurationDays = commissionDurationDays
	p.updatedBy = updatedBy
	p.updatedAt = now

	return nil
}

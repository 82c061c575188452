package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paidAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testPolicy(t *testing.T, onboarding, renewal int, enableRenewal bool, minRenewalDays, durationDays int) *Policy {
	t.Helper()
	policy, err := NewPolicy(onboarding, renewal, enableRenewal, minRenewalDays, durationDays, paidAt)
	require.NoError(t, err)
	return policy
}

func installer(id uint) *uint {
	return &id
}

func TestEvaluate_OnboardingCommission(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, true, 0, 0)

	record, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID:   42,
		InstallerID:  installer(7),
		Reference:    "txn-001",
		Amount:       63300,
		DurationDays: 365,
		PaidAt:       paidAt,
		FirstPayment: true,
	})

	require.NoError(t, err)
	require.True(t, eligible)
	assert.Equal(t, TypeOnboarding, record.CommissionType())
	// 63300 * 15% = 9495
	assert.Equal(t, int64(9495), record.Amount())
	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, "txn-001", record.TransactionReference())
	assert.Equal(t, uint(7), record.InstallerID())
	assert.True(t, len(record.CID()) > 4)
}

func TestEvaluate_NoInstallerNoCommission(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, true, 0, 0)

	record, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID:   42,
		Reference:    "txn-001",
		Amount:       63300,
		PaidAt:       paidAt,
		FirstPayment: true,
	})

	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Nil(t, record)
}

func TestEvaluate_RenewalCommission(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, true, 30, 0)
	onboarded := paidAt.AddDate(0, -6, 0)

	record, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID:   42,
		InstallerID:  installer(7),
		Reference:    "txn-002",
		Amount:       13500,
		DurationDays: 90,
		PaidAt:       paidAt,
		OnboardedAt:  &onboarded,
	})

	require.NoError(t, err)
	require.True(t, eligible)
	assert.Equal(t, TypeRenewal, record.CommissionType())
	assert.Equal(t, int64(1350), record.Amount())
}

func TestEvaluate_RenewalDisabled(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, false, 0, 0)

	record, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID:   42,
		InstallerID:  installer(7),
		Reference:    "txn-002",
		Amount:       13500,
		DurationDays: 90,
		PaidAt:       paidAt,
	})

	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Nil(t, record)
}

func TestEvaluate_RenewalBelowMinimumCycle(t *testing.T) {
	engine := NewEngine()
	// renewal_rate=10, enabled, min_renewal_days=30
	policy := testPolicy(t, 15, 10, true, 30, 0)

	record, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID:   42,
		InstallerID:  installer(7),
		Reference:    "txn-003",
		Amount:       5000,
		DurationDays: 14,
		PaidAt:       paidAt,
	})

	require.NoError(t, err)
	assert.False(t, eligible, "a 14-day cycle must earn no renewal commission under a 30-day minimum")
	assert.Nil(t, record)
}

func TestEvaluate_RenewalDurationWindow(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, true, 0, 180)

	inside := paidAt.AddDate(0, 0, -100)
	outside := paidAt.AddDate(0, 0, -200)

	_, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID: 42, InstallerID: installer(7), Reference: "txn-004",
		Amount: 5000, DurationDays: 30, PaidAt: paidAt, OnboardedAt: &inside,
	})
	require.NoError(t, err)
	assert.True(t, eligible)

	_, eligible, err = engine.Evaluate(policy, PaymentEvent{
		BusinessID: 42, InstallerID: installer(7), Reference: "txn-005",
		Amount: 5000, DurationDays: 30, PaidAt: paidAt, OnboardedAt: &outside,
	})
	require.NoError(t, err)
	assert.False(t, eligible, "renewal past the commission duration window earns nothing")

	// unknown onboarding date fails closed when a window is configured
	_, eligible, err = engine.Evaluate(policy, PaymentEvent{
		BusinessID: 42, InstallerID: installer(7), Reference: "txn-006",
		Amount: 5000, DurationDays: 30, PaidAt: paidAt,
	})
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestEvaluate_LifetimeWindowIgnoresOnboardingDate(t *testing.T) {
	engine := NewEngine()
	policy := testPolicy(t, 15, 10, true, 0, 0)
	ancient := paidAt.AddDate(-10, 0, 0)

	_, eligible, err := engine.Evaluate(policy, PaymentEvent{
		BusinessID: 42, InstallerID: installer(7), Reference: "txn-007",
		Amount: 5000, DurationDays: 30, PaidAt: paidAt, OnboardedAt: &ancient,
	})

	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEvaluate_NilPolicy(t *testing.T) {
	engine := NewEngine()

	record, eligible, err := engine.Evaluate(nil, PaymentEvent{
		BusinessID: 42, InstallerID: installer(7), Reference: "txn-008",
		Amount: 5000, PaidAt: paidAt, FirstPayment: true,
	})

	require.NoError(t, err)
	assert.False(t, eligible)
	assert.Nil(t, record)
}

func TestCommissionAmount_Rounding(t *testing.T) {
	assert.Equal(t, int64(9495), commissionAmount(63300, 15))
	assert.Equal(t, int64(0), commissionAmount(5000, 0))
	// 333 * 15% = 49.95, rounds to 50
	assert.Equal(t, int64(50), commissionAmount(333, 15))
	// 330 * 15% = 49.5, half rounds up
	assert.Equal(t, int64(50), commissionAmount(330, 15))
}

func TestMarkPaid(t *testing.T) {
	record, err := NewRecord("com_abc123", 7, 42, TypeOnboarding, 9495, "txn-001", paidAt)
	require.NoError(t, err)

	settleAt := paidAt.AddDate(0, 0, 30)
	require.NoError(t, record.MarkPaid(99, settleAt))

	assert.Equal(t, StatusPaid, record.Status())
	require.NotNil(t, record.PaidAt())
	assert.Equal(t, settleAt, *record.PaidAt())
	require.NotNil(t, record.PaidBy())
	assert.Equal(t, uint(99), *record.PaidBy())

	assert.ErrorIs(t, record.MarkPaid(99, settleAt), ErrRecordAlreadyPaid)
}

func TestPolicyValidation(t *testing.T) {
	_, err := NewPolicy(101, 10, true, 0, 0, paidAt)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewPolicy(10, -1, true, 0, 0, paidAt)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewPolicy(10, 10, true, -1, 0, paidAt)
	assert.ErrorIs(t, err, ErrInvalidDays)

	policy := testPolicy(t, 10, 5, false, 0, 0)
	assert.ErrorIs(t, policy.Update(10, 200, false, 0, 0, nil, paidAt), ErrInvalidRate)
	require.NoError(t, policy.Update(20, 8, true, 30, 365, nil, paidAt))
	assert.Equal(t, 20, policy.OnboardingRate())
	assert.True(t, policy.EnableRenewalCommission())
}

package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidBillingCycle is returned when billing cycle is not valid
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleAnnual    BillingCycle = "annual"
)

var ValidBillingCycles = map[BillingCycle]bool{
	BillingCycleMonthly:   true,
	BillingCycleQuarterly: true,
	BillingCycleAnnual:    true,
}

// billingCycleDays maps each cycle to its duration in days.
var billingCycleDays = map[BillingCycle]int{
	BillingCycleMonthly:   30,
	BillingCycleQuarterly: 90,
	BillingCycleAnnual:    365,
}

// billingCycleMultipliers maps each cycle to the number of billed months.
var billingCycleMultipliers = map[BillingCycle]int64{
	BillingCycleMonthly:   1,
	BillingCycleQuarterly: 3,
	BillingCycleAnnual:    12,
}

// billingCycleDiscountBP maps each cycle to its discount factor in basis
// points (10000 = no discount).
var billingCycleDiscountBP = map[BillingCycle]int64{
	BillingCycleMonthly:   10000,
	BillingCycleQuarterly: 9000,
	BillingCycleAnnual:    8500,
}

func ParseBillingCycle(value string) (BillingCycle, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	cycle := BillingCycle(normalized)

	if normalized == "" {
		return "", fmt.Errorf("billing cycle cannot be empty")
	}

	if !ValidBillingCycles[cycle] {
		return "", fmt.Errorf("%w: %s", ErrInvalidBillingCycle, value)
	}

	return cycle, nil
}

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	return ValidBillingCycles[b]
}

// Days returns the cycle duration in days.
func (b BillingCycle) Days() int {
	return billingCycleDays[b]
}

// Months returns the number of billed months covered by one cycle.
func (b BillingCycle) Months() int64 {
	return billingCycleMultipliers[b]
}

// DiscountBasisPoints returns the cycle discount factor in basis points.
// A monthly cadence carries no discount.
func (b BillingCycle) DiscountBasisPoints() int64 {
	return billingCycleDiscountBP[b]
}

// ApplyDiscount applies the cycle discount to an amount in cents,
// rounding half up.
func (b BillingCycle) ApplyDiscount(amount int64) int64 {
	return (amount*b.DiscountBasisPoints() + 5000) / 10000
}

// NextExpiry returns the expiry reached by paying one cycle starting at from.
func (b BillingCycle) NextExpiry(from time.Time) time.Time {
	return from.AddDate(0, 0, b.Days())
}

func (b BillingCycle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *BillingCycle) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	cycle, err := ParseBillingCycle(str)
	if err != nil {
		return err
	}

	*b = cycle
	return nil
}

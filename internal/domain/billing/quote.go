// Package billing holds the pure pricing computations of the engine:
// quote calculation across billing cycles, bundles and promo codes, and the
// tier selection transition. Nothing in this package touches persistence.
package billing

import (
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/catalog"
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

// LineKind identifies the origin of a quote line item.
type LineKind string

const (
	LineKindPlan   LineKind = "plan"
	LineKindModule LineKind = "module"
	LineKindBundle LineKind = "bundle"
)

// LineItem is one priced component of a quote. OriginalAmount is the
// undiscounted multi-month cost; Amount is the cycle-discounted charge.
type LineItem struct {
	Kind           LineKind `json:"kind"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	MonthlyPrice   int64    `json:"monthly_price"`
	OriginalAmount int64    `json:"original_amount"`
	Amount         int64    `json:"amount"`
}

// Quote is the structured price breakdown returned to callers. Totals are
// in cents. DiscountPercent is the rounded overall saving relative to the
// undiscounted monthly cost.
type Quote struct {
	Tier            vo.PlanTier     `json:"tier"`
	Cycle           vo.BillingCycle `json:"cycle"`
	Lines           []LineItem      `json:"lines"`
	OriginalTotal   int64           `json:"original_total"`
	Subtotal        int64           `json:"subtotal"`
	PromoCode       string          `json:"promo_code,omitempty"`
	PromoPercent    int             `json:"promo_percent,omitempty"`
	FinalTotal      int64           `json:"final_total"`
	Savings         int64           `json:"savings"`
	DiscountPercent int             `json:"discount_percent"`
}

// QuoteInput carries the catalog entities resolved for one selection.
// Modules are the selected add-ons; members of Bundle are excluded from
// per-module summation by the calculator itself.
type QuoteInput struct {
	Plan    *catalog.Plan
	Cycle   vo.BillingCycle
	Modules []*catalog.Module
	Bundle  *catalog.Bundle
	Promo   *catalog.PromoCode
	Now     time.Time
}

// QuoteCalculator computes price breakdowns. It is stateless and safe for
// concurrent use.
type QuoteCalculator struct{}

func NewQuoteCalculator() *QuoteCalculator {
	return &QuoteCalculator{}
}

// Calculate produces the price breakdown for a selection.
//
// The original total is the undiscounted multi-month cost: base monthly
// plan price times the cycle month count, plus each add-on at its monthly
// price times the month count. The final total uses the cycle-scoped
// catalog plan price and applies the cycle discount to add-on lines. A
// promo code, when present and redeemable, reduces the final total
// multiplicatively on top of the cycle discount.
func (qc *QuoteCalculator) Calculate(input QuoteInput) (*Quote, error) {
	if input.Plan == nil {
		return nil, catalog.ErrPlanNotFound
	}
	cycle := input.Cycle
	if !cycle.IsValid() {
		return nil, fmt.Errorf("%w: %s", vo.ErrInvalidBillingCycle, cycle)
	}

	tier := input.Plan.Tier()
	if !tier.AllowsModules() && (len(input.Modules) > 0 || input.Bundle != nil) {
		return nil, fmt.Errorf("tier %s does not support module add-ons", tier)
	}

	months := cycle.Months()

	planCyclePrice, err := input.Plan.CyclePrice(cycle)
	if err != nil {
		return nil, err
	}

	planOriginal := input.Plan.MonthlyPrice() * months
	lines := []LineItem{{
		Kind:           LineKindPlan,
		Code:           tier.String(),
		Name:           input.Plan.Name(),
		MonthlyPrice:   input.Plan.MonthlyPrice(),
		OriginalAmount: planOriginal,
		Amount:         planCyclePrice,
	}}

	originalTotal := planOriginal
	subtotal := planCyclePrice

	seen := make(map[string]bool)
	for _, module := range input.Modules {
		if module == nil {
			continue
		}
		if seen[module.Code()] {
			continue
		}
		seen[module.Code()] = true

		// Bundle members are priced through the bundle line instead.
		if input.Bundle != nil && input.Bundle.Contains(module.Code()) {
			continue
		}

		original := module.MonthlyPrice() * months
		amount := cycle.ApplyDiscount(original)
		lines = append(lines, LineItem{
			Kind:           LineKindModule,
			Code:           module.Code(),
			Name:           module.Name(),
			MonthlyPrice:   module.MonthlyPrice(),
			OriginalAmount: original,
			Amount:         amount,
		})
		originalTotal += original
		subtotal += amount
	}

	if input.Bundle != nil {
		original := input.Bundle.Price() * months
		amount := cycle.ApplyDiscount(original)
		lines = append(lines, LineItem{
			Kind:           LineKindBundle,
			Code:           input.Bundle.Code(),
			Name:           input.Bundle.Name(),
			MonthlyPrice:   input.Bundle.Price(),
			OriginalAmount: original,
			Amount:         amount,
		})
		originalTotal += original
		subtotal += amount
	}

	quote := &Quote{
		Tier:          tier,
		Cycle:         cycle,
		Lines:         lines,
		OriginalTotal: originalTotal,
		Subtotal:      subtotal,
		FinalTotal:    subtotal,
	}

	if input.Promo != nil {
		if err := input.Promo.CheckRedeemable(input.Now); err != nil {
			return nil, err
		}
		quote.PromoCode = input.Promo.Code()
		quote.PromoPercent = input.Promo.DiscountPercent()
		quote.FinalTotal = applyPercentDiscount(subtotal, input.Promo.DiscountPercent())
	}

	quote.Savings = quote.OriginalTotal - quote.FinalTotal
	quote.DiscountPercent = roundedPercent(quote.Savings, quote.OriginalTotal)

	return quote, nil
}

// applyPercentDiscount reduces amount by pct percent, rounding half up.
func applyPercentDiscount(amount int64, pct int) int64 {
	remaining := int64(100 - pct)
	return (amount*remaining + 50) / 100
}

// roundedPercent returns round(part/whole*100), or 0 when whole is 0.
func roundedPercent(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	return int((part*100 + whole/2) / whole)
}

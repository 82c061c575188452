package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servio-inc/servio/internal/domain/catalog"
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

// --- helpers ---

func growthPlan(t *testing.T) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(1, vo.TierGrowth, "Growth", 5000, map[vo.BillingCycle]int64{
		vo.BillingCycleMonthly:   5000,
		vo.BillingCycleQuarterly: 13500,
		vo.BillingCycleAnnual:    48000,
	}, 25, 5000, time.Now(), time.Now())
	require.NoError(t, err)
	return plan
}

func starterPlan(t *testing.T) *catalog.Plan {
	t.Helper()
	plan, err := catalog.ReconstructPlan(2, vo.TierStarter, "Starter", 2000, map[vo.BillingCycle]int64{
		vo.BillingCycleMonthly:   2000,
		vo.BillingCycleQuarterly: 5400,
		vo.BillingCycleAnnual:    20400,
	}, 5, 500, time.Now(), time.Now())
	require.NoError(t, err)
	return plan
}

func testModule(t *testing.T, code string, price int64) *catalog.Module {
	t.Helper()
	module, err := catalog.ReconstructModule(1, code, code, price, true, time.Now(), time.Now())
	require.NoError(t, err)
	return module
}

func testBundle(t *testing.T, code string, members []string, price int64) *catalog.Bundle {
	t.Helper()
	bundle, err := catalog.ReconstructBundle(1, code, code, members, price, time.Now(), time.Now())
	require.NoError(t, err)
	return bundle
}

func testPromo(t *testing.T, code string, percent, maxUses, usedCount int, expiresAt *time.Time, active bool) *catalog.PromoCode {
	t.Helper()
	promo, err := catalog.ReconstructPromoCode(1, code, percent, maxUses, usedCount, expiresAt, active, 1, time.Now(), time.Now())
	require.NoError(t, err)
	return promo
}

// =====================================================================
// TestCalculate_*
// =====================================================================

func TestCalculate_AnnualWithModule(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan:    growthPlan(t),
		Cycle:   vo.BillingCycleAnnual,
		Modules: []*catalog.Module{testModule(t, "KITCHEN_DISPLAY", 1500)},
		Now:     time.Now().UTC(),
	})

	require.NoError(t, err)
	// plan annual catalog price 48000 + 1500*12*0.85 = 63300
	assert.Equal(t, int64(63300), quote.FinalTotal)
	// 5000*12 + 1500*12 = 78000
	assert.Equal(t, int64(78000), quote.OriginalTotal)
	assert.Equal(t, int64(14700), quote.Savings)
	assert.Equal(t, 19, quote.DiscountPercent)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, LineKindPlan, quote.Lines[0].Kind)
	assert.Equal(t, int64(48000), quote.Lines[0].Amount)
	assert.Equal(t, LineKindModule, quote.Lines[1].Kind)
	assert.Equal(t, int64(15300), quote.Lines[1].Amount)
}

func TestCalculate_MonthlyHasNoDiscount(t *testing.T) {
	qc := NewQuoteCalculator()

	moduleSets := [][]*catalog.Module{
		nil,
		{testModule(t, "KITCHEN_DISPLAY", 1500)},
		{testModule(t, "KITCHEN_DISPLAY", 1500), testModule(t, "RECIPES", 900)},
	}

	for _, modules := range moduleSets {
		quote, err := qc.Calculate(QuoteInput{
			Plan:    growthPlan(t),
			Cycle:   vo.BillingCycleMonthly,
			Modules: modules,
			Now:     time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, quote.OriginalTotal, quote.FinalTotal, "monthly cadence must carry no discount")
		assert.Zero(t, quote.Savings)
		assert.Zero(t, quote.DiscountPercent)
	}
}

func TestCalculate_FinalTotalComposition(t *testing.T) {
	qc := NewQuoteCalculator()
	modules := []*catalog.Module{
		testModule(t, "KITCHEN_DISPLAY", 1500),
		testModule(t, "RECIPES", 900),
	}

	for _, cycle := range []vo.BillingCycle{vo.BillingCycleMonthly, vo.BillingCycleQuarterly, vo.BillingCycleAnnual} {
		quote, err := qc.Calculate(QuoteInput{
			Plan:    growthPlan(t),
			Cycle:   cycle,
			Modules: modules,
			Now:     time.Now().UTC(),
		})
		require.NoError(t, err)

		plan := growthPlan(t)
		expected, err := plan.CyclePrice(cycle)
		require.NoError(t, err)
		for _, m := range modules {
			expected += cycle.ApplyDiscount(m.MonthlyPrice() * cycle.Months())
		}
		assert.Equal(t, expected, quote.FinalTotal, "cycle %s", cycle)
	}
}

func TestCalculate_DuplicateModulesCountedOnce(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan: growthPlan(t),
		Cycle: vo.BillingCycleMonthly,
		Modules: []*catalog.Module{
			testModule(t, "KITCHEN_DISPLAY", 1500),
			testModule(t, "KITCHEN_DISPLAY", 1500),
		},
		Now: time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6500), quote.FinalTotal)
	assert.Len(t, quote.Lines, 2)
}

func TestCalculate_BundleReplacesMemberLines(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan:  growthPlan(t),
		Cycle: vo.BillingCycleMonthly,
		Modules: []*catalog.Module{
			testModule(t, "KITCHEN_DISPLAY", 1500),
			testModule(t, "INVENTORY_PLUS", 1200),
		},
		Bundle: testBundle(t, "BACK_OF_HOUSE", []string{"KITCHEN_DISPLAY", "INVENTORY_PLUS"}, 2200),
		Now:    time.Now().UTC(),
	})

	require.NoError(t, err)
	// 5000 plan + 2200 bundle; member modules are not billed separately
	assert.Equal(t, int64(7200), quote.FinalTotal)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, LineKindBundle, quote.Lines[1].Kind)
}

func TestCalculate_BundleKeepsNonMemberModules(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan:  growthPlan(t),
		Cycle: vo.BillingCycleMonthly,
		Modules: []*catalog.Module{
			testModule(t, "KITCHEN_DISPLAY", 1500),
			testModule(t, "LOYALTY", 800),
		},
		Bundle: testBundle(t, "BACK_OF_HOUSE", []string{"KITCHEN_DISPLAY", "INVENTORY_PLUS"}, 2200),
		Now:    time.Now().UTC(),
	})

	require.NoError(t, err)
	// plan 5000 + loyalty 800 + bundle 2200
	assert.Equal(t, int64(8000), quote.FinalTotal)
	assert.Len(t, quote.Lines, 3)
}

func TestCalculate_PromoStacksOnCycleDiscount(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan:    growthPlan(t),
		Cycle:   vo.BillingCycleAnnual,
		Modules: []*catalog.Module{testModule(t, "KITCHEN_DISPLAY", 1500)},
		Promo:   testPromo(t, "LAUNCH10", 10, 100, 0, nil, true),
		Now:     time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(63300), quote.Subtotal)
	// 10% off the cycle-discounted subtotal
	assert.Equal(t, int64(56970), quote.FinalTotal)
	assert.Equal(t, int64(78000-56970), quote.Savings)
	assert.Equal(t, "LAUNCH10", quote.PromoCode)
	assert.Equal(t, 10, quote.PromoPercent)
}

func TestCalculate_PromoRejections(t *testing.T) {
	qc := NewQuoteCalculator()
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		promo   *catalog.PromoCode
		wantErr error
	}{
		{"inactive", testPromo(t, "OFF", 10, 100, 0, nil, false), catalog.ErrPromoCodeInactive},
		{"expired", testPromo(t, "OLD", 10, 100, 0, &yesterday, true), catalog.ErrPromoCodeExpired},
		{"exhausted", testPromo(t, "USED", 10, 5, 5, nil, true), catalog.ErrPromoCodeExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := qc.Calculate(QuoteInput{
				Plan:  growthPlan(t),
				Cycle: vo.BillingCycleMonthly,
				Promo: tt.promo,
				Now:   now,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculate_StarterRejectsModules(t *testing.T) {
	qc := NewQuoteCalculator()

	_, err := qc.Calculate(QuoteInput{
		Plan:    starterPlan(t),
		Cycle:   vo.BillingCycleMonthly,
		Modules: []*catalog.Module{testModule(t, "KITCHEN_DISPLAY", 1500)},
		Now:     time.Now().UTC(),
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not support module add-ons")
}

func TestCalculate_StarterWithoutModules(t *testing.T) {
	qc := NewQuoteCalculator()

	quote, err := qc.Calculate(QuoteInput{
		Plan:  starterPlan(t),
		Cycle: vo.BillingCycleAnnual,
		Now:   time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(20400), quote.FinalTotal)
	assert.Equal(t, int64(24000), quote.OriginalTotal)
	assert.Len(t, quote.Lines, 1)
}

func TestCalculate_ZeroOriginalTotalYieldsZeroPercent(t *testing.T) {
	qc := NewQuoteCalculator()
	plan, err := catalog.ReconstructPlan(3, vo.TierStarter, "Free", 0, map[vo.BillingCycle]int64{
		vo.BillingCycleMonthly: 0,
	}, 1, 10, time.Now(), time.Now())
	require.NoError(t, err)

	quote, err := qc.Calculate(QuoteInput{
		Plan:  plan,
		Cycle: vo.BillingCycleMonthly,
		Now:   time.Now().UTC(),
	})

	require.NoError(t, err)
	assert.Zero(t, quote.DiscountPercent)
	assert.Zero(t, quote.FinalTotal)
}

func TestCalculate_MissingCyclePrice(t *testing.T) {
	qc := NewQuoteCalculator()
	plan, err := catalog.ReconstructPlan(4, vo.TierGrowth, "Growth", 5000, map[vo.BillingCycle]int64{
		vo.BillingCycleMonthly: 5000,
	}, 25, 5000, time.Now(), time.Now())
	require.NoError(t, err)

	_, err = qc.Calculate(QuoteInput{
		Plan:  plan,
		Cycle: vo.BillingCycleAnnual,
		Now:   time.Now().UTC(),
	})

	assert.ErrorIs(t, err, catalog.ErrCyclePriceMissing)
}

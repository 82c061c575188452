package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/billing"
	"github.com/servio-inc/servio/internal/domain/catalog"
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
)

// Selection is a raw checkout selection as submitted by a caller.
type Selection struct {
	PlanTier    string
	Cycle       string
	ModuleCodes []string
	BundleCode  string
	PromoCode   string
}

// SelectionResolver turns a raw selection into the catalog entities the
// quote calculator consumes. Unknown or malformed references come back as
// validation errors so the caller can surface them before any payment is
// attempted.
type SelectionResolver struct {
	catalogRepo catalog.Repository
	promoRepo   catalog.PromoCodeRepository
}

func NewSelectionResolver(catalogRepo catalog.Repository, promoRepo catalog.PromoCodeRepository) *SelectionResolver {
	return &SelectionResolver{
		catalogRepo: catalogRepo,
		promoRepo:   promoRepo,
	}
}

func (r *SelectionResolver) Resolve(ctx context.Context, sel Selection, now time.Time) (billing.QuoteInput, error) {
	var input billing.QuoteInput

	tier, err := vo.NewPlanTier(sel.PlanTier)
	if err != nil {
		return input, apperrors.NewValidationError("invalid plan tier", err.Error())
	}
	cycle, err := vo.ParseBillingCycle(sel.Cycle)
	if err != nil {
		return input, apperrors.NewValidationError("invalid billing cycle", err.Error())
	}

	plan, err := r.catalogRepo.GetPlanByTier(ctx, tier)
	if err != nil {
		if errors.Is(err, catalog.ErrPlanNotFound) {
			return input, apperrors.NewValidationError("unknown plan tier", sel.PlanTier)
		}
		return input, fmt.Errorf("failed to get plan: %w", err)
	}

	// Switching to a tier that forbids add-ons clears the selection rather
	// than erroring; an explicit module list under such a tier is malformed.
	moduleCodes := billing.SelectTier(tier, sel.ModuleCodes)
	if !tier.AllowsModules() && (len(sel.ModuleCodes) > 0 || sel.BundleCode != "") {
		return input, apperrors.NewValidationError(
			fmt.Sprintf("tier %s does not support module add-ons", tier))
	}

	var modules []*catalog.Module
	if len(moduleCodes) > 0 {
		modules, err = r.catalogRepo.GetModulesByCodes(ctx, moduleCodes)
		if err != nil {
			return input, fmt.Errorf("failed to get modules: %w", err)
		}
		if len(modules) != len(uniqueCodes(moduleCodes)) {
			return input, apperrors.NewValidationError("unknown module code in selection")
		}
	}

	var bundle *catalog.Bundle
	if sel.BundleCode != "" {
		bundle, err = r.catalogRepo.GetBundleByCode(ctx, sel.BundleCode)
		if err != nil {
			if errors.Is(err, catalog.ErrBundleNotFound) {
				return input, apperrors.NewValidationError("unknown bundle code", sel.BundleCode)
			}
			return input, fmt.Errorf("failed to get bundle: %w", err)
		}
	}

	var promo *catalog.PromoCode
	if sel.PromoCode != "" {
		promo, err = r.promoRepo.GetByCode(ctx, sel.PromoCode)
		if err != nil {
			if errors.Is(err, catalog.ErrPromoCodeNotFound) {
				return input, apperrors.NewValidationError("unknown promo code", sel.PromoCode)
			}
			return input, fmt.Errorf("failed to get promo code: %w", err)
		}
		if err := promo.CheckRedeemable(now); err != nil {
			return input, apperrors.NewValidationError("promo code not redeemable", err.Error())
		}
	}

	return billing.QuoteInput{
		Plan:    plan,
		Cycle:   cycle,
		Modules: modules,
		Bundle:  bundle,
		Promo:   promo,
		Now:     now,
	}, nil
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

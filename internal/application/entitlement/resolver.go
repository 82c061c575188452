// Package entitlement answers "is module M usable by business B right
// now". The check runs on every protected-feature access, so it reads only
// two rows and never writes.
package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/logger"
)

// Resolver decides module entitlement from the subscription's effective
// status and the business's grants. Billing-sensitive callers should check
// the status explicitly rather than relying on HasModule alone, since the
// grace period still reads as entitled here.
type Resolver struct {
	subscriptionRepo subscription.Repository
	grantRepo        subscription.ModuleGrantRepository
	graceDays        int
	logger           logger.Interface
}

func NewResolver(
	subscriptionRepo subscription.Repository,
	grantRepo subscription.ModuleGrantRepository,
	graceDays int,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		subscriptionRepo: subscriptionRepo,
		grantRepo:        grantRepo,
		graceDays:        graceDays,
		logger:           logger,
	}
}

// HasModule reports whether the module is usable by the business at this
// instant. An operator bypass short-circuits every other check.
func (r *Resolver) HasModule(ctx context.Context, businessID uint, moduleCode string, operatorBypass bool) (bool, error) {
	if operatorBypass {
		return true, nil
	}
	if businessID == 0 || moduleCode == "" {
		return false, nil
	}

	sub, err := r.subscriptionRepo.GetCurrentByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load subscription: %w", err)
	}

	now := biztime.NowUTC()
	if !sub.IsEntitled(now, r.graceDays) {
		return false, nil
	}

	grant, err := r.grantRepo.GetByBusinessAndModule(ctx, businessID, moduleCode)
	if err != nil {
		if errors.Is(err, subscription.ErrGrantNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load module grant: %w", err)
	}

	return grant.Entitled(now), nil
}

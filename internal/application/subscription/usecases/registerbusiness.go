package usecases

import (
	"context"
	"errors"
	"fmt"

	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/id"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type RegisterBusinessCommand struct {
	BusinessID  uint
	PlanTier    string
	SkipTrial   bool
	InstallerID *uint
}

// RegisterBusinessUseCase creates a business's initial subscription: a
// trial window by default, or a pending-payment row when the business opts
// to pay immediately.
type RegisterBusinessUseCase struct {
	subscriptionRepo subscription.Repository
	statusCache      StatusCache
	trialDays        int
	logger           logger.Interface
}

func NewRegisterBusinessUseCase(
	subscriptionRepo subscription.Repository,
	statusCache StatusCache,
	trialDays int,
	logger logger.Interface,
) *RegisterBusinessUseCase {
	return &RegisterBusinessUseCase{
		subscriptionRepo: subscriptionRepo,
		statusCache:      statusCache,
		trialDays:        trialDays,
		logger:           logger,
	}
}

func (uc *RegisterBusinessUseCase) Execute(ctx context.Context, cmd RegisterBusinessCommand) (*subscription.Subscription, error) {
	if cmd.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}

	tier, err := vo.NewPlanTier(cmd.PlanTier)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid plan tier", err.Error())
	}

	existing, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, cmd.BusinessID)
	if err != nil && !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		uc.logger.Errorw("failed to look up current subscription", "error", err, "business_id", cmd.BusinessID)
		return nil, fmt.Errorf("failed to look up current subscription: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("business already has a subscription", existing.SID())
	}

	now := biztime.NowUTC()
	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription sid: %w", err)
	}

	var sub *subscription.Subscription
	if cmd.SkipTrial {
		sub, err = subscription.NewPendingSubscription(sid, cmd.BusinessID, tier, cmd.InstallerID, now)
	} else {
		sub, err = subscription.NewTrialSubscription(sid, cmd.BusinessID, tier, cmd.InstallerID, uc.trialDays, now)
	}
	if err != nil {
		return nil, apperrors.NewValidationError("invalid registration", err.Error())
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "business_id", cmd.BusinessID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := uc.statusCache.Invalidate(ctx, cmd.BusinessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", cmd.BusinessID)
	}

	uc.logger.Infow("business registered",
		"business_id", cmd.BusinessID,
		"sid", sub.SID(),
		"status", sub.Status(),
	)

	return sub, nil
}

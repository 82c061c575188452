package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	BusinessID uint
	Reason     string
	AdminID    uint
}

// CancelSubscriptionUseCase moves a subscription into its terminal state.
// Cancellation is admin-only and irreversible.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	statusCache      StatusCache
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	statusCache StatusCache,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		statusCache:      statusCache,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*subscription.Subscription, error) {
	if cmd.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("cancel reason is required")
	}

	sub, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, cmd.BusinessID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		uc.logger.Errorw("failed to load subscription", "error", err, "business_id", cmd.BusinessID)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	if err := sub.Cancel(cmd.Reason, biztime.NowUTC()); err != nil {
		return nil, apperrors.NewConflictError("subscription cannot be cancelled", err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "business_id", cmd.BusinessID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	if err := uc.statusCache.Invalidate(ctx, cmd.BusinessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", cmd.BusinessID)
	}

	uc.logger.Infow("subscription cancelled",
		"business_id", cmd.BusinessID,
		"sid", sub.SID(),
		"admin_id", cmd.AdminID,
		"reason", cmd.Reason,
	)

	return sub, nil
}

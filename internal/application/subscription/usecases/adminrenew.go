package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/db"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type AdminRenewCommand struct {
	BusinessID   uint
	DurationDays int
	Amount       int64
	// Reference identifies the manual renewal. Uniqueness is enforced like
	// any gateway reference even though no verification happens.
	Reference string
	AdminID   uint
}

// AdminRenewUseCase is the manual override path: an operator extends a
// subscription for a fixed duration without gateway verification. The
// payment still lands in the ledger and still accrues commission.
type AdminRenewUseCase struct {
	subscriptionRepo subscription.Repository
	ledgerRepo       subscription.PaymentLedgerRepository
	accrual          CommissionAccrual
	txManager        *db.TransactionManager
	statusCache      StatusCache
	logger           logger.Interface
}

func NewAdminRenewUseCase(
	subscriptionRepo subscription.Repository,
	ledgerRepo subscription.PaymentLedgerRepository,
	accrual CommissionAccrual,
	txManager *db.TransactionManager,
	statusCache StatusCache,
	logger logger.Interface,
) *AdminRenewUseCase {
	return &AdminRenewUseCase{
		subscriptionRepo: subscriptionRepo,
		ledgerRepo:       ledgerRepo,
		accrual:          accrual,
		txManager:        txManager,
		statusCache:      statusCache,
		logger:           logger,
	}
}

func (uc *AdminRenewUseCase) Execute(ctx context.Context, cmd AdminRenewCommand) (*subscription.Subscription, error) {
	if cmd.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}
	if cmd.Reference == "" {
		return nil, apperrors.NewValidationError("transaction reference is required")
	}
	if cmd.DurationDays <= 0 {
		return nil, apperrors.NewValidationError("duration days must be positive")
	}
	if cmd.Amount < 0 {
		return nil, apperrors.NewValidationError("amount must not be negative")
	}

	if existing, err := uc.ledgerRepo.GetByReference(ctx, cmd.Reference); err == nil {
		if existing.BusinessID() == cmd.BusinessID {
			sub, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, cmd.BusinessID)
			if err != nil {
				return nil, fmt.Errorf("failed to load subscription for replay: %w", err)
			}
			return sub, nil
		}
		return nil, apperrors.NewConflictError("transaction reference already consumed", cmd.Reference)
	} else if !errors.Is(err, subscription.ErrPaymentNotFound) {
		return nil, fmt.Errorf("failed to check payment ledger: %w", err)
	}

	now := biztime.NowUTC()
	var sub *subscription.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subscriptionRepo.GetCurrentByBusinessID(txCtx, cmd.BusinessID)
		if err != nil {
			if errors.Is(err, subscription.ErrSubscriptionNotFound) {
				return apperrors.NewNotFoundError("subscription not found")
			}
			return fmt.Errorf("failed to load subscription: %w", err)
		}

		if err := sub.ActivateForDays(cmd.Reference, cmd.Amount, cmd.DurationDays, now); err != nil {
			if errors.Is(err, subscription.ErrInvalidStatusTransition) {
				return apperrors.NewConflictError("subscription cannot be renewed", err.Error())
			}
			return apperrors.NewValidationError("invalid renewal", err.Error())
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		record, err := subscription.NewPaymentRecord(
			sub.ID(), cmd.BusinessID, cmd.Reference, cmd.Amount, cmd.DurationDays, nil, now)
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(txCtx, record); err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError("transaction reference already consumed", cmd.Reference)
			}
			return fmt.Errorf("failed to append payment record: %w", err)
		}

		return uc.accrual.Accrue(txCtx, sub, cmd.Reference, cmd.Amount, cmd.DurationDays, now)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.statusCache.Invalidate(ctx, cmd.BusinessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", cmd.BusinessID)
	}

	uc.logger.Infow("subscription renewed manually",
		"business_id", cmd.BusinessID,
		"admin_id", cmd.AdminID,
		"duration_days", cmd.DurationDays,
		"amount", cmd.Amount,
	)

	return sub, nil
}

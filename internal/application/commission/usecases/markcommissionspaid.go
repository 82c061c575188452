package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/db"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type MarkCommissionsPaidCommand struct {
	CIDs    []string
	AdminID uint
}

type MarkCommissionsPaidResult struct {
	Paid []*commission.Record
}

// MarkCommissionsPaidUseCase settles pending commissions in bulk. This is
// the only path that moves a record out of pending.
type MarkCommissionsPaidUseCase struct {
	recordRepo commission.RecordRepository
	txManager  *db.TransactionManager
	logger     logger.Interface
}

func NewMarkCommissionsPaidUseCase(
	recordRepo commission.RecordRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *MarkCommissionsPaidUseCase {
	return &MarkCommissionsPaidUseCase{
		recordRepo: recordRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *MarkCommissionsPaidUseCase) Execute(ctx context.Context, cmd MarkCommissionsPaidCommand) (*MarkCommissionsPaidResult, error) {
	if len(cmd.CIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one commission ID is required")
	}

	now := biztime.NowUTC()
	paid := make([]*commission.Record, 0, len(cmd.CIDs))

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, cid := range cmd.CIDs {
			record, err := uc.recordRepo.GetByCID(txCtx, cid)
			if err != nil {
				if errors.Is(err, commission.ErrRecordNotFound) {
					return apperrors.NewNotFoundError("commission record not found", cid)
				}
				return fmt.Errorf("failed to load commission record: %w", err)
			}

			if err := record.MarkPaid(cmd.AdminID, now); err != nil {
				if errors.Is(err, commission.ErrRecordAlreadyPaid) {
					return apperrors.NewConflictError("commission record already paid", cid)
				}
				return err
			}
			if err := uc.recordRepo.Update(txCtx, record); err != nil {
				return fmt.Errorf("failed to update commission record: %w", err)
			}
			paid = append(paid, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("commissions marked paid",
		"count", len(paid),
		"admin_id", cmd.AdminID,
	)

	return &MarkCommissionsPaidResult{Paid: paid}, nil
}

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

type RevokeGrantCommand struct {
	BusinessID uint
	ModuleCode string
	// Delete removes the row entirely instead of deactivating it.
	Delete  bool
	AdminID uint
}

// RevokeGrantUseCase disables or deletes a manual module grant.
type RevokeGrantUseCase struct {
	grantRepo   subscription.ModuleGrantRepository
	statusCache StatusCache
	logger      logger.Interface
}

func NewRevokeGrantUseCase(
	grantRepo subscription.ModuleGrantRepository,
	statusCache StatusCache,
	logger logger.Interface,
) *RevokeGrantUseCase {
	return &RevokeGrantUseCase{
		grantRepo:   grantRepo,
		statusCache: statusCache,
		logger:      logger,
	}
}

func (uc *RevokeGrantUseCase) Execute(ctx context.Context, cmd RevokeGrantCommand) error {
	if cmd.BusinessID == 0 {
		return apperrors.NewValidationError("business ID is required")
	}
	if cmd.ModuleCode == "" {
		return apperrors.NewValidationError("module code is required")
	}

	grant, err := uc.grantRepo.GetByBusinessAndModule(ctx, cmd.BusinessID, cmd.ModuleCode)
	if err != nil {
		if errors.Is(err, subscription.ErrGrantNotFound) {
			return apperrors.NewNotFoundError("module grant not found", cmd.ModuleCode)
		}
		return fmt.Errorf("failed to look up grant: %w", err)
	}

	if cmd.Delete {
		if err := uc.grantRepo.Delete(ctx, grant.ID()); err != nil {
			return fmt.Errorf("failed to delete grant: %w", err)
		}
	} else {
		grant.Deactivate(biztime.NowUTC())
		if err := uc.grantRepo.Update(ctx, grant); err != nil {
			return fmt.Errorf("failed to update grant: %w", err)
		}
	}

	if err := uc.statusCache.Invalidate(ctx, cmd.BusinessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", cmd.BusinessID)
	}

	uc.logger.Infow("module grant revoked",
		"business_id", cmd.BusinessID,
		"module_code", cmd.ModuleCode,
		"deleted", cmd.Delete,
		"admin_id", cmd.AdminID,
	)

	return nil
}

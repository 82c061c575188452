package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type GrantModuleCommand struct {
	BusinessID uint
	ModuleCode string
	ExpiryDate *time.Time
	AdminID    uint
}

// GrantModuleUseCase is the manual grant path, independent of any payment.
type GrantModuleUseCase struct {
	grantRepo   subscription.ModuleGrantRepository
	catalogRepo catalog.Repository
	statusCache StatusCache
	logger      logger.Interface
}

func NewGrantModuleUseCase(
	grantRepo subscription.ModuleGrantRepository,
	catalogRepo catalog.Repository,
	statusCache StatusCache,
	logger logger.Interface,
) *GrantModuleUseCase {
	return &GrantModuleUseCase{
		grantRepo:   grantRepo,
		catalogRepo: catalogRepo,
		statusCache: statusCache,
		logger:      logger,
	}
}

func (uc *GrantModuleUseCase) Execute(ctx context.Context, cmd GrantModuleCommand) (*subscription.ModuleGrant, error) {
	if cmd.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}
	if cmd.ModuleCode == "" {
		return nil, apperrors.NewValidationError("module code is required")
	}

	modules, err := uc.catalogRepo.GetModulesByCodes(ctx, []string{cmd.ModuleCode})
	if err != nil {
		return nil, fmt.Errorf("failed to look up module: %w", err)
	}
	if len(modules) == 0 {
		return nil, apperrors.NewValidationError("unknown module code", cmd.ModuleCode)
	}

	now := biztime.NowUTC()

	// Re-activating an existing grant instead of duplicating it.
	existing, err := uc.grantRepo.GetByBusinessAndModule(ctx, cmd.BusinessID, cmd.ModuleCode)
	if err != nil && !errors.Is(err, subscription.ErrGrantNotFound) {
		return nil, fmt.Errorf("failed to look up grant: %w", err)
	}
	if existing != nil {
		existing.Activate(now)
		existing.SetExpiry(cmd.ExpiryDate, now)
		if err := uc.grantRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update grant: %w", err)
		}
		uc.invalidate(ctx, cmd.BusinessID)
		return existing, nil
	}

	grant, err := subscription.NewModuleGrant(cmd.BusinessID, cmd.ModuleCode, cmd.ExpiryDate, now)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid grant", err.Error())
	}
	if err := uc.grantRepo.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	uc.invalidate(ctx, cmd.BusinessID)
	uc.logger.Infow("module granted manually",
		"business_id", cmd.BusinessID,
		"module_code", cmd.ModuleCode,
		"admin_id", cmd.AdminID,
	)

	return grant, nil
}

func (uc *GrantModuleUseCase) invalidate(ctx context.Context, businessID uint) {
	if err := uc.statusCache.Invalidate(ctx, businessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", businessID)
	}
}

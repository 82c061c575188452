package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/catalog"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type UpdatePromoCodeCommand struct {
	ID              uint
	DiscountPercent int
	MaxUses         int
	ExpiresAt       *time.Time
	// Active toggles the code when non-nil.
	Active *bool
}

type UpdatePromoCodeUseCase struct {
	promoRepo catalog.PromoCodeRepository
	logger    logger.Interface
}

func NewUpdatePromoCodeUseCase(promoRepo catalog.PromoCodeRepository, logger logger.Interface) *UpdatePromoCodeUseCase {
	return &UpdatePromoCodeUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

func (uc *UpdatePromoCodeUseCase) Execute(ctx context.Context, cmd UpdatePromoCodeCommand) (*catalog.PromoCode, error) {
	promo, err := uc.promoRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrPromoCodeNotFound) {
			return nil, apperrors.NewNotFoundError("promo code not found")
		}
		return nil, fmt.Errorf("failed to load promo code: %w", err)
	}

	if err := promo.Update(cmd.DiscountPercent, cmd.MaxUses, cmd.ExpiresAt); err != nil {
		return nil, apperrors.NewValidationError("invalid promo code update", err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			promo.Activate()
		} else {
			promo.Deactivate()
		}
	}

	if err := uc.promoRepo.Update(ctx, promo); err != nil {
		uc.logger.Errorw("failed to update promo code", "error", err, "id", cmd.ID)
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}

	return promo, nil
}

package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/catalog"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type CreatePromoCodeCommand struct {
	Code            string
	DiscountPercent int
	MaxUses         int
	ExpiresAt       *time.Time
}

type CreatePromoCodeUseCase struct {
	promoRepo catalog.PromoCodeRepository
	logger    logger.Interface
}

func NewCreatePromoCodeUseCase(promoRepo catalog.PromoCodeRepository, logger logger.Interface) *CreatePromoCodeUseCase {
	return &CreatePromoCodeUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

func (uc *CreatePromoCodeUseCase) Execute(ctx context.Context, cmd CreatePromoCodeCommand) (*catalog.PromoCode, error) {
	promo, err := catalog.NewPromoCode(cmd.Code, cmd.DiscountPercent, cmd.MaxUses, cmd.ExpiresAt)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid promo code", err.Error())
	}

	if err := uc.promoRepo.Create(ctx, promo); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("promo code already exists", cmd.Code)
		}
		uc.logger.Errorw("failed to create promo code", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	uc.logger.Infow("promo code created", "code", promo.Code(), "discount_percent", promo.DiscountPercent())
	return promo, nil
}

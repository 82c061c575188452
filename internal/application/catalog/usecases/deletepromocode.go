package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type DeletePromoCodeUseCase struct {
	promoRepo catalog.PromoCodeRepository
	logger    logger.Interface
}

func NewDeletePromoCodeUseCase(promoRepo catalog.PromoCodeRepository, logger logger.Interface) *DeletePromoCodeUseCase {
	return &DeletePromoCodeUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

func (uc *DeletePromoCodeUseCase) Execute(ctx context.Context, promoID uint) error {
	if _, err := uc.promoRepo.GetByID(ctx, promoID); err != nil {
		if errors.Is(err, catalog.ErrPromoCodeNotFound) {
			return apperrors.NewNotFoundError("promo code not found")
		}
		return fmt.Errorf("failed to load promo code: %w", err)
	}

	if err := uc.promoRepo.Delete(ctx, promoID); err != nil {
		uc.logger.Errorw("failed to delete promo code", "error", err, "id", promoID)
		return fmt.Errorf("failed to delete promo code: %w", err)
	}

	uc.logger.Infow("promo code deleted", "id", promoID)
	return nil
}

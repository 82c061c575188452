package usecases

import (
	"context"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type ListPromoCodesQuery struct {
	Offset int
	Limit  int
}

type ListPromoCodesResult struct {
	PromoCodes []*catalog.PromoCode
	Total      int64
}

type ListPromoCodesUseCase struct {
	promoRepo catalog.PromoCodeRepository
	logger    logger.Interface
}

func NewListPromoCodesUseCase(promoRepo catalog.PromoCodeRepository, logger logger.Interface) *ListPromoCodesUseCase {
	return &ListPromoCodesUseCase{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

func (uc *ListPromoCodesUseCase) Execute(ctx context.Context, query ListPromoCodesQuery) (*ListPromoCodesResult, error) {
	promoCodes, total, err := uc.promoRepo.List(ctx, query.Offset, query.Limit)
	if err != nil {
		uc.logger.Errorw("failed to list promo codes", "error", err)
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}

	return &ListPromoCodesResult{
		PromoCodes: promoCodes,
		Total:      total,
	}, nil
}

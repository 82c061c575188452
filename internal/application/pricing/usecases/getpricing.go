package usecases

import (
	"context"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/shared/logger"
)

// GetPricingResult is the full catalog exposed to the checkout flow.
type GetPricingResult struct {
	Plans   []*catalog.Plan
	Modules []*catalog.Module
	Bundles []*catalog.Bundle
}

type GetPricingUseCase struct {
	catalogRepo catalog.Repository
	logger      logger.Interface
}

func NewGetPricingUseCase(catalogRepo catalog.Repository, logger logger.Interface) *GetPricingUseCase {
	return &GetPricingUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (uc *GetPricingUseCase) Execute(ctx context.Context) (*GetPricingResult, error) {
	plans, err := uc.catalogRepo.ListPlans(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	modules, err := uc.catalogRepo.ListModules(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list modules", "error", err)
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	bundles, err := uc.catalogRepo.ListBundles(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list bundles", "error", err)
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}

	return &GetPricingResult{
		Plans:   plans,
		Modules: modules,
		Bundles: bundles,
	}, nil
}

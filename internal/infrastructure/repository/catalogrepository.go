// Package repository implements the domain repository interfaces on gorm.
// Repositories translate gorm.ErrRecordNotFound into the domain sentinels
// the application layer branches on.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/domain/catalog"
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/mappers"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type CatalogRepositoryImpl struct {
	db           *gorm.DB
	planMapper   mappers.PlanMapper
	moduleMapper mappers.ModuleMapper
	bundleMapper mappers.BundleMapper
	logger       logger.Interface
}

func NewCatalogRepository(db *gorm.DB, logger logger.Interface) catalog.Repository {
	return &CatalogRepositoryImpl{
		db:           db,
		planMapper:   mappers.NewPlanMapper(),
		moduleMapper: mappers.NewModuleMapper(),
		bundleMapper: mappers.NewBundleMapper(),
		logger:       logger,
	}
}

func (r *CatalogRepositoryImpl) ListPlans(ctx context.Context) ([]*catalog.Plan, error) {
	var planModels []*models.PlanModel

	if err := r.db.WithContext(ctx).Order("monthly_price ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return r.planMapper.ToEntities(planModels)
}

func (r *CatalogRepositoryImpl) GetPlanByTier(ctx context.Context, tier vo.PlanTier) (*catalog.Plan, error) {
	var model models.PlanModel

	if err := r.db.WithContext(ctx).Where("tier = ?", tier.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPlanNotFound
		}
		r.logger.Errorw("failed to get plan by tier", "tier", tier.String(), "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.planMapper.ToEntity(&model)
}

func (r *CatalogRepositoryImpl) ListModules(ctx context.Context) ([]*catalog.Module, error) {
	var moduleModels []*models.ModuleModel

	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code ASC").Find(&moduleModels).Error; err != nil {
		r.logger.Errorw("failed to list modules", "error", err)
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	return r.moduleMapper.ToEntities(moduleModels)
}

func (r *CatalogRepositoryImpl) GetModulesByCodes(ctx context.Context, codes []string) ([]*catalog.Module, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	var moduleModels []*models.ModuleModel

	if err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&moduleModels).Error; err != nil {
		r.logger.Errorw("failed to get modules by codes", "codes", codes, "error", err)
		return nil, fmt.Errorf("failed to get modules: %w", err)
	}

	return r.moduleMapper.ToEntities(moduleModels)
}

func (r *CatalogRepositoryImpl) ListBundles(ctx context.Context) ([]*catalog.Bundle, error) {
	var bundleModels []*models.BundleModel

	if err := r.db.WithContext(ctx).Order("code ASC").Find(&bundleModels).Error; err != nil {
		r.logger.Errorw("failed to list bundles", "error", err)
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}

	return r.bundleMapper.ToEntities(bundleModels)
}

func (r *CatalogRepositoryImpl) GetBundleByCode(ctx context.Context, code string) (*catalog.Bundle, error) {
	var model models.BundleModel

	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBundleNotFound
		}
		r.logger.Errorw("failed to get bundle by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get bundle: %w", err)
	}

	return r.bundleMapper.ToEntity(&model)
}

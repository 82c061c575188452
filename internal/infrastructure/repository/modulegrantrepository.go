package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/mappers"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type ModuleGrantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ModuleGrantMapper
	logger logger.Interface
}

func NewModuleGrantRepository(db *gorm.DB, logger logger.Interface) subscription.ModuleGrantRepository {
	return &ModuleGrantRepositoryImpl{
		db:     db,
		mapper: mappers.NewModuleGrantMapper(),
		logger: logger,
	}
}

func (r *ModuleGrantRepositoryImpl) Create(ctx context.Context, grant *subscription.ModuleGrant) error {
	model, err := r.mapper.ToModel(grant)
	if err != nil {
		r.logger.Errorw("failed to map module grant to model", "error", err)
		return fmt.Errorf("failed to map module grant: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create module grant",
			"business_id", model.BusinessID,
			"module_code", model.ModuleCode,
			"error", err)
		return fmt.Errorf("failed to create module grant: %w", err)
	}

	if err := grant.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set module grant ID: %w", err)
	}

	r.logger.Infow("module grant created",
		"id", model.ID,
		"business_id", model.BusinessID,
		"module_code", model.ModuleCode)
	return nil
}

func (r *ModuleGrantRepositoryImpl) Update(ctx context.Context, grant *subscription.ModuleGrant) error {
	model, err := r.mapper.ToModel(grant)
	if err != nil {
		r.logger.Errorw("failed to map module grant to model", "id", grant.ID(), "error", err)
		return fmt.Errorf("failed to map module grant: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.ModuleGrantModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"is_active":   model.IsActive,
			"expiry_date": model.ExpiryDate,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update module grant", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update module grant: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return subscription.ErrGrantNotFound
	}

	return nil
}

func (r *ModuleGrantRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ModuleGrantModel{}, id)

	if result.Error != nil {
		r.logger.Errorw("failed to delete module grant", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete module grant: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return subscription.ErrGrantNotFound
	}

	r.logger.Infow("module grant deleted", "id", id)
	return nil
}

func (r *ModuleGrantRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.ModuleGrant, error) {
	var model models.ModuleGrantModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrGrantNotFound
		}
		r.logger.Errorw("failed to get module grant by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get module grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ModuleGrantRepositoryImpl) GetByBusinessAndModule(ctx context.Context, businessID uint, moduleCode string) (*subscription.ModuleGrant, error) {
	var model models.ModuleGrantModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("business_id = ? AND module_code = ?", businessID, moduleCode).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrGrantNotFound
		}
		r.logger.Errorw("failed to get module grant",
			"business_id", businessID,
			"module_code", moduleCode,
			"error", err)
		return nil, fmt.Errorf("failed to get module grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ModuleGrantRepositoryImpl) ListByBusinessID(ctx context.Context, businessID uint) ([]*subscription.ModuleGrant, error) {
	var grantModels []*models.ModuleGrantModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("business_id = ?", businessID).Order("module_code ASC").Find(&grantModels).Error; err != nil {
		r.logger.Errorw("failed to list module grants", "business_id", businessID, "error", err)
		return nil, fmt.Errorf("failed to list module grants: %w", err)
	}

	return r.mapper.ToEntities(grantModels)
}

// ReplaceForBusiness swaps the business's full grant set in one pass.
// Existing rows for re-granted modules are updated in place to keep their
// IDs; rows for modules no longer paid for are removed.
func (r *ModuleGrantRepositoryImpl) ReplaceForBusiness(ctx context.Context, businessID uint, grants []*subscription.ModuleGrant) error {
	tx := db.GetTxFromContext(ctx, r.db)

	keepCodes := make([]string, 0, len(grants))
	for _, grant := range grants {
		keepCodes = append(keepCodes, grant.ModuleCode())
	}

	del := tx.Where("business_id = ?", businessID)
	if len(keepCodes) > 0 {
		del = del.Where("module_code NOT IN ?", keepCodes)
	}
	if err := del.Delete(&models.ModuleGrantModel{}).Error; err != nil {
		r.logger.Errorw("failed to clear stale module grants", "business_id", businessID, "error", err)
		return fmt.Errorf("failed to clear stale module grants: %w", err)
	}

	for _, grant := range grants {
		model, err := r.mapper.ToModel(grant)
		if err != nil {
			return fmt.Errorf("failed to map module grant: %w", err)
		}

		var existing models.ModuleGrantModel
		err = tx.Where("business_id = ? AND module_code = ?", businessID, model.ModuleCode).First(&existing).Error
		switch {
		case err == nil:
			result := tx.Model(&models.ModuleGrantModel{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"is_active":   model.IsActive,
					"expiry_date": model.ExpiryDate,
					"updated_at":  model.UpdatedAt,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to refresh module grant: %w", result.Error)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to create module grant: %w", err)
			}
			if grant.ID() == 0 {
				if err := grant.SetID(model.ID); err != nil {
					return fmt.Errorf("failed to set module grant ID: %w", err)
				}
			}
		default:
			return fmt.Errorf("failed to look up module grant: %w", err)
		}
	}

	r.logger.Infow("module grants replaced", "business_id", businessID, "count", len(grants))
	return nil
}

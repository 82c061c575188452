package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/mappers"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type PromoCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PromoCodeMapper
	logger logger.Interface
}

func NewPromoCodeRepository(db *gorm.DB, logger logger.Interface) catalog.PromoCodeRepository {
	return &PromoCodeRepositoryImpl{
		db:     db,
		mapper: mappers.NewPromoCodeMapper(),
		logger: logger,
	}
}

func (r *PromoCodeRepositoryImpl) Create(ctx context.Context, promo *catalog.PromoCode) error {
	model, err := r.mapper.ToModel(promo)
	if err != nil {
		r.logger.Errorw("failed to map promo code to model", "error", err)
		return fmt.Errorf("failed to map promo code: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create promo code", "code", model.Code, "error", err)
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	if err := promo.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set promo code ID: %w", err)
	}

	r.logger.Infow("promo code created", "id", model.ID, "code", model.Code)
	return nil
}

// Update persists promo mutations with an optimistic version check. A
// concurrent redemption bumps the version first and loses rows here.
func (r *PromoCodeRepositoryImpl) Update(ctx context.Context, promo *catalog.PromoCode) error {
	model, err := r.mapper.ToModel(promo)
	if err != nil {
		r.logger.Errorw("failed to map promo code to model", "id", promo.ID(), "error", err)
		return fmt.Errorf("failed to map promo code: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PromoCodeModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"discount_percent": model.DiscountPercent,
			"max_uses":         model.MaxUses,
			"used_count":       model.UsedCount,
			"expires_at":       model.ExpiresAt,
			"active":           model.Active,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update promo code", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update promo code: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		r.logger.Warnw("promo code update lost version race", "id", model.ID, "version", model.Version)
		return fmt.Errorf("promo code version conflict: id=%d", model.ID)
	}

	return nil
}

func (r *PromoCodeRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PromoCodeModel{}, id)

	if result.Error != nil {
		r.logger.Errorw("failed to delete promo code", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete promo code: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return catalog.ErrPromoCodeNotFound
	}

	r.logger.Infow("promo code deleted", "id", id)
	return nil
}

func (r *PromoCodeRepositoryImpl) GetByID(ctx context.Context, id uint) (*catalog.PromoCode, error) {
	var model models.PromoCodeModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPromoCodeNotFound
		}
		r.logger.Errorw("failed to get promo code by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PromoCodeRepositoryImpl) GetByCode(ctx context.Context, code string) (*catalog.PromoCode, error) {
	var model models.PromoCodeModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPromoCodeNotFound
		}
		r.logger.Errorw("failed to get promo code by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PromoCodeRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*catalog.PromoCode, int64, error) {
	var promoModels []*models.PromoCodeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PromoCodeModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count promo codes", "error", err)
		return nil, 0, fmt.Errorf("failed to count promo codes: %w", err)
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&promoModels).Error; err != nil {
		r.logger.Errorw("failed to list promo codes", "error", err)
		return nil, 0, fmt.Errorf("failed to list promo codes: %w", err)
	}

	entities, err := r.mapper.ToEntities(promoModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map promo codes: %w", err)
	}

	return entities, total, nil
}

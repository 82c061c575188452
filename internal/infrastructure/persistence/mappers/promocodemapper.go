package mappers

import (
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type PromoCodeMapper interface {
	ToEntity(model *models.PromoCodeModel) (*catalog.PromoCode, error)
	ToModel(entity *catalog.PromoCode) (*models.PromoCodeModel, error)
	ToEntities(models []*models.PromoCodeModel) ([]*catalog.PromoCode, error)
}

type promoCodeMapper struct{}

func NewPromoCodeMapper() PromoCodeMapper {
	return &promoCodeMapper{}
}

func (m *promoCodeMapper) ToEntity(model *models.PromoCodeModel) (*catalog.PromoCode, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructPromoCode(
		model.ID,
		model.Code,
		model.DiscountPercent,
		model.MaxUses,
		model.UsedCount,
		model.ExpiresAt,
		model.Active,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct promo code entity: %w", err)
	}
	return entity, nil
}

func (m *promoCodeMapper) ToModel(entity *catalog.PromoCode) (*models.PromoCodeModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PromoCodeModel{
		ID:              entity.ID(),
		Code:            entity.Code(),
		DiscountPercent: entity.DiscountPercent(),
		MaxUses:         entity.MaxUses(),
		UsedCount:       entity.UsedCount(),
		ExpiresAt:       entity.ExpiresAt(),
		Active:          entity.IsActive(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *promoCodeMapper) ToEntities(promoModels []*models.PromoCodeModel) ([]*catalog.PromoCode, error) {
	return mapper.MapSlicePtrWithID(promoModels, m.ToEntity, func(pm *models.PromoCodeModel) uint { return pm.ID })
}

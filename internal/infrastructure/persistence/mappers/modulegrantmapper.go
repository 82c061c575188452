package mappers

import (
	"fmt"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type ModuleGrantMapper interface {
	ToEntity(model *models.ModuleGrantModel) (*subscription.ModuleGrant, error)
	ToModel(entity *subscription.ModuleGrant) (*models.ModuleGrantModel, error)
	ToEntities(models []*models.ModuleGrantModel) ([]*subscription.ModuleGrant, error)
}

type moduleGrantMapper struct{}

func NewModuleGrantMapper() ModuleGrantMapper {
	return &moduleGrantMapper{}
}

func (m *moduleGrantMapper) ToEntity(model *models.ModuleGrantModel) (*subscription.ModuleGrant, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := subscription.ReconstructModuleGrant(
		model.ID,
		model.BusinessID,
		model.ModuleCode,
		model.IsActive,
		model.ExpiryDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct module grant: %w", err)
	}
	return entity, nil
}

func (m *moduleGrantMapper) ToModel(entity *subscription.ModuleGrant) (*models.ModuleGrantModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ModuleGrantModel{
		ID:         entity.ID(),
		BusinessID: entity.BusinessID(),
		ModuleCode: entity.ModuleCode(),
		IsActive:   entity.IsActive(),
		ExpiryDate: entity.ExpiryDate(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *moduleGrantMapper) ToEntities(grantModels []*models.ModuleGrantModel) ([]*subscription.ModuleGrant, error) {
	return mapper.MapSlicePtrWithID(grantModels, m.ToEntity, func(gm *models.ModuleGrantModel) uint { return gm.ID })
}

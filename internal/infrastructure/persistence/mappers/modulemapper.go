package mappers

import (
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type ModuleMapper interface {
	ToEntity(model *models.ModuleModel) (*catalog.Module, error)
	ToModel(entity *catalog.Module) (*models.ModuleModel, error)
	ToEntities(models []*models.ModuleModel) ([]*catalog.Module, error)
}

type moduleMapper struct{}

func NewModuleMapper() ModuleMapper {
	return &moduleMapper{}
}

func (m *moduleMapper) ToEntity(model *models.ModuleModel) (*catalog.Module, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := catalog.ReconstructModule(
		model.ID,
		model.Code,
		model.Name,
		model.MonthlyPrice,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct module entity: %w", err)
	}
	return entity, nil
}

func (m *moduleMapper) ToModel(entity *catalog.Module) (*models.ModuleModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ModuleModel{
		ID:           entity.ID(),
		Code:         entity.Code(),
		Name:         entity.Name(),
		MonthlyPrice: entity.MonthlyPrice(),
		IsActive:     entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *moduleMapper) ToEntities(moduleModels []*models.ModuleModel) ([]*catalog.Module, error) {
	return mapper.MapSlicePtrWithID(moduleModels, m.ToEntity, func(mm *models.ModuleModel) uint { return mm.ID })
}

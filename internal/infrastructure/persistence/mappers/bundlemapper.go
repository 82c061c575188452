package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type BundleMapper interface {
	ToEntity(model *models.BundleModel) (*catalog.Bundle, error)
	ToModel(entity *catalog.Bundle) (*models.BundleModel, error)
	ToEntities(models []*models.BundleModel) ([]*catalog.Bundle, error)
}

type bundleMapper struct{}

func NewBundleMapper() BundleMapper {
	return &bundleMapper{}
}

func (m *bundleMapper) ToEntity(model *models.BundleModel) (*catalog.Bundle, error) {
	if model == nil {
		return nil, nil
	}

	var moduleCodes []string
	if err := json.Unmarshal(model.ModuleCodes, &moduleCodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle module codes: %w", err)
	}

	entity, err := catalog.ReconstructBundle(
		model.ID,
		model.Code,
		model.Name,
		moduleCodes,
		model.Price,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct bundle entity: %w", err)
	}
	return entity, nil
}

func (m *bundleMapper) ToModel(entity *catalog.Bundle) (*models.BundleModel, error) {
	if entity == nil {
		return nil, nil
	}

	codesJSON, err := json.Marshal(entity.ModuleCodes())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bundle module codes: %w", err)
	}

	return &models.BundleModel{
		ID:          entity.ID(),
		Code:        entity.Code(),
		Name:        entity.Name(),
		ModuleCodes: codesJSON,
		Price:       entity.Price(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}, nil
}

func (m *bundleMapper) ToEntities(bundleModels []*models.BundleModel) ([]*catalog.Bundle, error) {
	return mapper.MapSlicePtrWithID(bundleModels, m.ToEntity, func(bm *models.BundleModel) uint { return bm.ID })
}

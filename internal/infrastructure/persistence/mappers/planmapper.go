// Package mappers converts between domain aggregates and persistence
// models. Nothing outside this package touches both at once.
package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/catalog"
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*catalog.Plan, error)
	ToModel(entity *catalog.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*catalog.Plan, error)
}

type planMapper struct{}

func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.PlanModel) (*catalog.Plan, error) {
	if model == nil {
		return nil, nil
	}

	var rawPrices map[string]int64
	if err := json.Unmarshal(model.CyclePrices, &rawPrices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cycle prices: %w", err)
	}
	cyclePrices := make(map[vo.BillingCycle]int64, len(rawPrices))
	for cycleName, price := range rawPrices {
		cycle, err := vo.ParseBillingCycle(cycleName)
		if err != nil {
			return nil, fmt.Errorf("invalid cycle in plan prices: %w", err)
		}
		cyclePrices[cycle] = price
	}

	tier, err := vo.NewPlanTier(model.Tier)
	if err != nil {
		return nil, err
	}

	entity, err := catalog.ReconstructPlan(
		model.ID,
		tier,
		model.Name,
		model.MonthlyPrice,
		cyclePrices,
		model.UserLimit,
		model.ProductLimit,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return entity, nil
}

func (m *planMapper) ToModel(entity *catalog.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	rawPrices := make(map[string]int64)
	for cycle, price := range entity.CyclePrices() {
		rawPrices[cycle.String()] = price
	}
	pricesJSON, err := json.Marshal(rawPrices)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cycle prices: %w", err)
	}

	return &models.PlanModel{
		ID:           entity.ID(),
		Tier:         entity.Tier().String(),
		Name:         entity.Name(),
		MonthlyPrice: entity.MonthlyPrice(),
		CyclePrices:  pricesJSON,
		UserLimit:    entity.UserLimit(),
		ProductLimit: entity.ProductLimit(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(planModels []*models.PlanModel) ([]*catalog.Plan, error) {
	return mapper.MapSlicePtrWithID(planModels, m.ToEntity, func(pm *models.PlanModel) uint { return pm.ID })
}

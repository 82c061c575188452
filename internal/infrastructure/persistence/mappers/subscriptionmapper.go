package mappers

import (
	"fmt"
	"time"

	cvo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/domain/subscription"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type subscriptionMapper struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapper{}
}

func (m *subscriptionMapper) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.StorableStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	var cycle cvo.BillingCycle
	if model.BillingCycle != nil && *model.BillingCycle != "" {
		parsed, err := cvo.ParseBillingCycle(*model.BillingCycle)
		if err != nil {
			return nil, fmt.Errorf("failed to parse billing cycle: %w", err)
		}
		cycle = parsed
	}

	var endDate time.Time
	if model.EndDate != nil {
		endDate = *model.EndDate
	}
	var lastReference string
	if model.LastReference != nil {
		lastReference = *model.LastReference
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.BusinessID,
		cvo.PlanTier(model.PlanTier),
		cycle,
		status,
		model.StartDate,
		endDate,
		model.AmountPaid,
		lastReference,
		model.InstallerID,
		model.CancelledAt,
		model.CancelReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *subscriptionMapper) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.SubscriptionModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		BusinessID:   entity.BusinessID(),
		PlanTier:     entity.PlanTier().String(),
		Status:       entity.Status().String(),
		StartDate:    entity.StartDate(),
		AmountPaid:   entity.AmountPaid(),
		InstallerID:  entity.InstallerID(),
		CancelledAt:  entity.CancelledAt(),
		CancelReason: entity.CancelReason(),
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}

	if entity.Cycle() != "" {
		cycleName := entity.Cycle().String()
		model.BillingCycle = &cycleName
	}
	if !entity.EndDate().IsZero() {
		endDate := entity.EndDate()
		model.EndDate = &endDate
	}
	if entity.LastReference() != "" {
		lastReference := entity.LastReference()
		model.LastReference = &lastReference
	}

	return model, nil
}

func (m *subscriptionMapper) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSlicePtrWithID(subModels, m.ToEntity, func(sm *models.SubscriptionModel) uint { return sm.ID })
}

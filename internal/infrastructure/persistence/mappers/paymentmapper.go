package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type PaymentMapper interface {
	ToEntity(model *models.PaymentModel) (*subscription.PaymentRecord, error)
	ToModel(entity *subscription.PaymentRecord) (*models.PaymentModel, error)
	ToEntities(models []*models.PaymentModel) ([]*subscription.PaymentRecord, error)
}

type paymentMapper struct{}

func NewPaymentMapper() PaymentMapper {
	return &paymentMapper{}
}

func (m *paymentMapper) ToEntity(model *models.PaymentModel) (*subscription.PaymentRecord, error) {
	if model == nil {
		return nil, nil
	}

	var moduleCodes []string
	if len(model.ModuleCodes) > 0 {
		if err := json.Unmarshal(model.ModuleCodes, &moduleCodes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment module codes: %w", err)
		}
	}

	entity, err := subscription.ReconstructPaymentRecord(
		model.ID,
		model.SubscriptionID,
		model.BusinessID,
		model.Reference,
		model.Amount,
		model.DurationDays,
		moduleCodes,
		model.PaidAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct payment record: %w", err)
	}
	return entity, nil
}

func (m *paymentMapper) ToModel(entity *subscription.PaymentRecord) (*models.PaymentModel, error) {
	if entity == nil {
		return nil, nil
	}

	model := &models.PaymentModel{
		ID:             entity.ID(),
		SubscriptionID: entity.SubscriptionID(),
		BusinessID:     entity.BusinessID(),
		Reference:      entity.Reference(),
		Amount:         entity.Amount(),
		DurationDays:   entity.DurationDays(),
		PaidAt:         entity.PaidAt(),
		CreatedAt:      entity.CreatedAt(),
	}

	if codes := entity.ModuleCodes(); len(codes) > 0 {
		codesJSON, err := json.Marshal(codes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payment module codes: %w", err)
		}
		model.ModuleCodes = codesJSON
	}

	return model, nil
}

func (m *paymentMapper) ToEntities(paymentModels []*models.PaymentModel) ([]*subscription.PaymentRecord, error) {
	return mapper.MapSlicePtrWithID(paymentModels, m.ToEntity, func(pm *models.PaymentModel) uint { return pm.ID })
}

package mappers

import (
	"fmt"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/mapper"
)

type CommissionPolicyMapper interface {
	ToEntity(model *models.CommissionPolicyModel) (*commission.Policy, error)
	ToModel(entity *commission.Policy) (*models.CommissionPolicyModel, error)
}

type commissionPolicyMapper struct{}

func NewCommissionPolicyMapper() CommissionPolicyMapper {
	return &commissionPolicyMapper{}
}

func (m *commissionPolicyMapper) ToEntity(model *models.CommissionPolicyModel) (*commission.Policy, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := commission.ReconstructPolicy(
		model.ID,
		model.OnboardingRate,
		model.RenewalRate,
		model.EnableRenewalCommission,
		model.MinRenewalDays,
		model.CommissionDurationDays,
		model.UpdatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct commission policy: %w", err)
	}
	return entity, nil
}

func (m *commissionPolicyMapper) ToModel(entity *commission.Policy) (*models.CommissionPolicyModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CommissionPolicyModel{
		ID:                      entity.ID(),
		OnboardingRate:          entity.OnboardingRate(),
		RenewalRate:             entity.RenewalRate(),
		EnableRenewalCommission: entity.EnableRenewalCommission(),
		MinRenewalDays:          entity.MinRenewalDays(),
		CommissionDurationDays:  entity.CommissionDurationDays(),
		UpdatedBy:               entity.UpdatedBy(),
		CreatedAt:               entity.CreatedAt(),
		UpdatedAt:               entity.UpdatedAt(),
	}, nil
}

type CommissionRecordMapper interface {
	ToEntity(model *models.CommissionRecordModel) (*commission.Record, error)
	ToModel(entity *commission.Record) (*models.CommissionRecordModel, error)
	ToEntities(models []*models.CommissionRecordModel) ([]*commission.Record, error)
}

type commissionRecordMapper struct{}

func NewCommissionRecordMapper() CommissionRecordMapper {
	return &commissionRecordMapper{}
}

func (m *commissionRecordMapper) ToEntity(model *models.CommissionRecordModel) (*commission.Record, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := commission.ReconstructRecord(
		model.ID,
		model.CID,
		model.InstallerID,
		model.BusinessID,
		commission.Type(model.Type),
		model.Amount,
		commission.Status(model.Status),
		model.TransactionReference,
		model.PaidAt,
		model.PaidBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct commission record: %w", err)
	}
	return entity, nil
}

func (m *commissionRecordMapper) ToModel(entity *commission.Record) (*models.CommissionRecordModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CommissionRecordModel{
		ID:                   entity.ID(),
		CID:                  entity.CID(),
		InstallerID:          entity.InstallerID(),
		BusinessID:           entity.BusinessID(),
		Type:                 string(entity.CommissionType()),
		Amount:               entity.Amount(),
		Status:               string(entity.Status()),
		TransactionReference: entity.TransactionReference(),
		PaidAt:               entity.PaidAt(),
		PaidBy:               entity.PaidBy(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}, nil
}

func (m *commissionRecordMapper) ToEntities(recordModels []*models.CommissionRecordModel) ([]*commission.Record, error) {
	return mapper.MapSlicePtrWithID(recordModels, m.ToEntity, func(rm *models.CommissionRecordModel) uint { return rm.ID })
}

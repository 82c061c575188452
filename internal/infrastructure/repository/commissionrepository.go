package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/mappers"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type CommissionPolicyRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CommissionPolicyMapper
	logger logger.Interface
}

func NewCommissionPolicyRepository(db *gorm.DB, logger logger.Interface) commission.PolicyRepository {
	return &CommissionPolicyRepositoryImpl{
		db:     db,
		mapper: mappers.NewCommissionPolicyMapper(),
		logger: logger,
	}
}

func (r *CommissionPolicyRepositoryImpl) Get(ctx context.Context) (*commission.Policy, error) {
	var model models.CommissionPolicyModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Order("id ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commission.ErrPolicyNotFound
		}
		r.logger.Errorw("failed to get commission policy", "error", err)
		return nil, fmt.Errorf("failed to get commission policy: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CommissionPolicyRepositoryImpl) Save(ctx context.Context, policy *commission.Policy) error {
	model, err := r.mapper.ToModel(policy)
	if err != nil {
		r.logger.Errorw("failed to map commission policy to model", "error", err)
		return fmt.Errorf("failed to map commission policy: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)

	if model.ID == 0 {
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create commission policy", "error", err)
			return fmt.Errorf("failed to create commission policy: %w", err)
		}
		r.logger.Infow("commission policy created", "id", model.ID)
		return nil
	}

	result := tx.Model(&models.CommissionPolicyModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"onboarding_rate":           model.OnboardingRate,
			"renewal_rate":              model.RenewalRate,
			"enable_renewal_commission": model.EnableRenewalCommission,
			"min_renewal_days":          model.MinRenewalDays,
			"commission_duration_days":  model.CommissionDurationDays,
			"updated_by":                model.UpdatedBy,
			"updated_at":                model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update commission policy", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update commission policy: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return commission.ErrPolicyNotFound
	}

	r.logger.Infow("commission policy updated", "id", model.ID)
	return nil
}

type CommissionRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CommissionRecordMapper
	logger logger.Interface
}

func NewCommissionRecordRepository(db *gorm.DB, logger logger.Interface) commission.RecordRepository {
	return &CommissionRecordRepositoryImpl{
		db:     db,
		mapper: mappers.NewCommissionRecordMapper(),
		logger: logger,
	}
}

func (r *CommissionRecordRepositoryImpl) Create(ctx context.Context, record *commission.Record) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map commission record to model", "error", err)
		return fmt.Errorf("failed to map commission record: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create commission record",
			"cid", model.CID,
			"reference", model.TransactionReference,
			"error", err)
		return fmt.Errorf("failed to create commission record: %w", err)
	}

	if err := record.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set commission record ID: %w", err)
	}

	r.logger.Infow("commission record created",
		"id", model.ID,
		"cid", model.CID,
		"installer_id", model.InstallerID,
		"type", model.Type,
		"amount", model.Amount)
	return nil
}

func (r *CommissionRecordRepositoryImpl) Update(ctx context.Context, record *commission.Record) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map commission record to model", "id", record.ID(), "error", err)
		return fmt.Errorf("failed to map commission record: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.CommissionRecordModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"paid_at":    model.PaidAt,
			"paid_by":    model.PaidBy,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update commission record", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update commission record: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return commission.ErrRecordNotFound
	}

	return nil
}

func (r *CommissionRecordRepositoryImpl) GetByID(ctx context.Context, id uint) (*commission.Record, error) {
	var model models.CommissionRecordModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commission.ErrRecordNotFound
		}
		r.logger.Errorw("failed to get commission record by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get commission record: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CommissionRecordRepositoryImpl) GetByCID(ctx context.Context, cid string) (*commission.Record, error) {
	var model models.CommissionRecordModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("cid = ?", cid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commission.ErrRecordNotFound
		}
		r.logger.Errorw("failed to get commission record by CID", "cid", cid, "error", err)
		return nil, fmt.Errorf("failed to get commission record: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CommissionRecordRepositoryImpl) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Model(&models.CommissionRecordModel{}).
		Where("transaction_reference = ?", reference).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("failed to check commission reference", "reference", reference, "error", err)
		return false, fmt.Errorf("failed to check commission reference: %w", err)
	}

	return count > 0, nil
}

func (r *CommissionRecordRepositoryImpl) List(ctx context.Context, filter commission.RecordFilter, offset, limit int) ([]*commission.Record, int64, error) {
	var recordModels []*models.CommissionRecordModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CommissionRecordModel{})
	if filter.InstallerID != nil {
		query = query.Where("installer_id = ?", *filter.InstallerID)
	}
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count commission records", "error", err)
		return nil, 0, fmt.Errorf("failed to count commission records: %w", err)
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&recordModels).Error; err != nil {
		r.logger.Errorw("failed to list commission records", "error", err)
		return nil, 0, fmt.Errorf("failed to list commission records: %w", err)
	}

	entities, err := r.mapper.ToEntities(recordModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map commission records: %w", err)
	}

	return entities, total, nil
}

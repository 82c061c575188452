package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/mappers"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/shared/db"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type PaymentLedgerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PaymentMapper
	logger logger.Interface
}

func NewPaymentLedgerRepository(db *gorm.DB, logger logger.Interface) subscription.PaymentLedgerRepository {
	return &PaymentLedgerRepositoryImpl{
		db:     db,
		mapper: mappers.NewPaymentMapper(),
		logger: logger,
	}
}

// Append inserts a ledger entry. The unique index on reference makes a
// duplicate insert fail; callers treat that as an idempotency conflict.
func (r *PaymentLedgerRepositoryImpl) Append(ctx context.Context, record *subscription.PaymentRecord) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map payment record to model", "error", err)
		return fmt.Errorf("failed to map payment record: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append payment record",
			"reference", model.Reference,
			"business_id", model.BusinessID,
			"error", err)
		return fmt.Errorf("failed to append payment record: %w", err)
	}

	if err := record.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set payment record ID: %w", err)
	}

	r.logger.Infow("payment recorded",
		"id", model.ID,
		"reference", model.Reference,
		"business_id", model.BusinessID,
		"amount", model.Amount)
	return nil
}

func (r *PaymentLedgerRepositoryImpl) GetByReference(ctx context.Context, reference string) (*subscription.PaymentRecord, error) {
	var model models.PaymentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPaymentNotFound
		}
		r.logger.Errorw("failed to get payment by reference", "reference", reference, "error", err)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentLedgerRepositoryImpl) CountByBusinessID(ctx context.Context, businessID uint) (int64, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.PaymentModel{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count payments", "business_id", businessID, "error", err)
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}

func (r *PaymentLedgerRepositoryImpl) FirstByBusinessID(ctx context.Context, businessID uint) (*subscription.PaymentRecord, error) {
	var model models.PaymentModel

	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.Where("business_id = ?", businessID).
		Order("paid_at ASC, id ASC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPaymentNotFound
		}
		r.logger.Errorw("failed to get first payment", "business_id", businessID, "error", err)
		return nil, fmt.Errorf("failed to get first payment: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PaymentLedgerRepositoryImpl) ListByBusinessID(ctx context.Context, businessID uint, offset, limit int) ([]*subscription.PaymentRecord, int64, error) {
	var paymentModels []*models.PaymentModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("business_id = ?", businessID)
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count payments", "business_id", businessID, "error", err)
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	if err := query.Order("paid_at DESC").Offset(offset).Limit(limit).Find(&paymentModels).Error; err != nil {
		r.logger.Errorw("failed to list payments", "business_id", businessID, "error", err)
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	entities, err := r.mapper.ToEntities(paymentModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map payments: %w", err)
	}

	return entities, total, nil
}

package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// PaymentModel persists one ledger entry. The unique index on Reference is
// the idempotency guard against duplicate webhook delivery; rows are never
// updated or deleted.
type PaymentModel struct {
	ID             uint           `gorm:"primarykey"`
	SubscriptionID uint           `gorm:"not null;index:idx_payment_subscription"`
	BusinessID     uint           `gorm:"not null;index:idx_payment_business"`
	Reference      string         `gorm:"uniqueIndex;not null;size:100"`
	Amount         int64          `gorm:"not null"`
	DurationDays   int            `gorm:"not null;default:0"`
	ModuleCodes    datatypes.JSON
	PaidAt         time.Time `gorm:"not null;index:idx_paid_at"`
	CreatedAt      time.Time
}

func (PaymentModel) TableName() string {
	return constants.TableSubscriptionPayments
}

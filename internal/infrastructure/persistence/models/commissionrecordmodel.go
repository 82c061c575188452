package models

import (
	"time"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// CommissionRecordModel persists one installer commission. The unique
// index on TransactionReference prevents double-crediting a payment.
type CommissionRecordModel struct {
	ID                   uint   `gorm:"primarykey"`
	CID                  string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: com_xxx"`
	InstallerID          uint   `gorm:"not null;index:idx_commission_installer"`
	BusinessID           uint   `gorm:"not null;index:idx_commission_business"`
	Type                 string `gorm:"not null;size:20"`
	Amount               int64  `gorm:"not null"`
	Status               string `gorm:"not null;size:20;index:idx_commission_status"`
	TransactionReference string `gorm:"uniqueIndex;not null;size:100"`
	PaidAt               *time.Time
	PaidBy               *uint
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (CommissionRecordModel) TableName() string {
	return constants.TableCommissionRecords
}

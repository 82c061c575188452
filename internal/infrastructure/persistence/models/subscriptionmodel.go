package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// SubscriptionModel persists the subscription lifecycle row. Status holds
// only coarse states; grace period and expiry are derived on read from
// EndDate.
type SubscriptionModel struct {
	ID            uint       `gorm:"primarykey"`
	SID           string     `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	BusinessID    uint       `gorm:"not null;index:idx_business_subscription"`
	PlanTier      string     `gorm:"not null;size:20"`
	BillingCycle  *string    `gorm:"size:20"`
	Status        string     `gorm:"not null;size:20;index:idx_status"`
	StartDate     time.Time  `gorm:"not null"`
	EndDate       *time.Time `gorm:"index:idx_end_date"`
	AmountPaid    int64      `gorm:"not null;default:0"`
	LastReference *string    `gorm:"size:100"`
	InstallerID   *uint      `gorm:"index:idx_installer"`
	CancelledAt   *time.Time
	CancelReason  *string `gorm:"size:500"`
	Version       int     `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}

package models

import (
	"time"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// CommissionPolicyModel persists the single global payout configuration.
type CommissionPolicyModel struct {
	ID                      uint `gorm:"primarykey"`
	OnboardingRate          int  `gorm:"not null;default:0"`
	RenewalRate             int  `gorm:"not null;default:0"`
	EnableRenewalCommission bool `gorm:"not null;default:false"`
	MinRenewalDays          int  `gorm:"not null;default:0"`
	CommissionDurationDays  int  `gorm:"not null;default:0"`
	UpdatedBy               *uint
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (CommissionPolicyModel) TableName() string {
	return constants.TableCommissionPolicies
}

package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// PromoCodeModel persists one redeemable discount code.
type PromoCodeModel struct {
	ID              uint   `gorm:"primarykey"`
	Code            string `gorm:"uniqueIndex;not null;size:50"`
	DiscountPercent int    `gorm:"not null"`
	MaxUses         int    `gorm:"not null;default:0"`
	UsedCount       int    `gorm:"not null;default:0"`
	ExpiresAt       *time.Time
	Active          bool `gorm:"not null;default:true"`
	Version         int  `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (PromoCodeModel) TableName() string {
	return constants.TablePromoCodes
}

// BeforeCreate hook for GORM
func (p *PromoCodeModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}

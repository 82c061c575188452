package models

import (
	"time"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// ModuleGrantModel persists one business module grant.
type ModuleGrantModel struct {
	ID         uint   `gorm:"primarykey"`
	BusinessID uint   `gorm:"not null;uniqueIndex:idx_business_module,priority:1"`
	ModuleCode string `gorm:"not null;size:50;uniqueIndex:idx_business_module,priority:2"`
	IsActive   bool   `gorm:"not null;default:true"`
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ModuleGrantModel) TableName() string {
	return constants.TableModuleGrants
}

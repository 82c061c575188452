package models

import (
	"time"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// ModuleModel persists one catalog feature module.
type ModuleModel struct {
	ID           uint   `gorm:"primarykey"`
	Code         string `gorm:"uniqueIndex;not null;size:50"`
	Name         string `gorm:"not null;size:100"`
	MonthlyPrice int64  `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ModuleModel) TableName() string {
	return constants.TableModules
}

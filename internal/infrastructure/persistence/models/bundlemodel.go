package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// BundleModel persists one catalog bundle. ModuleCodes is a JSON array of
// member module codes.
type BundleModel struct {
	ID          uint           `gorm:"primarykey"`
	Code        string         `gorm:"uniqueIndex;not null;size:50"`
	Name        string         `gorm:"not null;size:100"`
	ModuleCodes datatypes.JSON `gorm:"not null"`
	Price       int64          `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BundleModel) TableName() string {
	return constants.TableBundles
}

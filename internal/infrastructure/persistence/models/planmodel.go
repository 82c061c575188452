// Package models holds the database persistence models. They form the
// anti-corruption layer between the domain aggregates and gorm.
package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/servio-inc/servio/internal/shared/constants"
)

// PlanModel persists one catalog plan. CyclePrices is a JSON object of
// cycle name to price in cents.
type PlanModel struct {
	ID           uint           `gorm:"primarykey"`
	Tier         string         `gorm:"uniqueIndex;not null;size:20"`
	Name         string         `gorm:"not null;size:100"`
	MonthlyPrice int64          `gorm:"not null"`
	CyclePrices  datatypes.JSON `gorm:"not null"`
	UserLimit    int            `gorm:"not null;default:0"`
	ProductLimit int            `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}

package catalog

import (
	"fmt"
	"time"
)

// Module represents a paid feature add-on catalog entry.
type Module struct {
	id           uint
	code         string
	name         string
	monthlyPrice int64
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewModule(code, name string, monthlyPrice int64) (*Module, error) {
	if code == "" {
		return nil, fmt.Errorf("module code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("module name is required")
	}
	if monthlyPrice < 0 {
		return nil, fmt.Errorf("module price cannot be negative")
	}

	now := time.Now().UTC()
	return &Module{
		code:         code,
		name:         name,
		monthlyPrice: monthlyPrice,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructModule(id uint, code, name string, monthlyPrice int64, active bool, createdAt, updatedAt time.Time) (*Module, error) {
	if id == 0 {
		return nil, fmt.Errorf("module ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("module code is required")
	}

	return &Module{
		id:           id,
		code:         code,
		name:         name,
		monthlyPrice: monthlyPrice,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (m *Module) ID() uint {
	return m.id
}

func (m *Module) Code() string {
	return m.code
}

func (m *Module) Name() string {
	return m.name
}

// MonthlyPrice returns the add-on monthly price in cents.
func (m *Module) MonthlyPrice() int64 {
	return m.monthlyPrice
}

func (m *Module) IsActive() bool {
	return m.active
}

func (m *Module) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Module) UpdatedAt() time.Time {
	return m.updatedAt
}

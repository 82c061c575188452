package subscription

import (
	"fmt"
	"time"
)

// ModuleGrant records that a business has been granted a feature module.
// A grant is effective only while the business's subscription is entitled;
// a past expiry date disables the grant regardless of the active flag.
type ModuleGrant struct {
	id         uint
	businessID uint
	moduleCode string
	isActive   bool
	expiryDate *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewModuleGrant creates a grant for a business. A nil expiry means the
// grant never expires on its own.
func NewModuleGrant(businessID uint, moduleCode string, expiryDate *time.Time, now time.Time) (*ModuleGrant, error) {
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if moduleCode == "" {
		return nil, fmt.Errorf("module code is required")
	}

	return &ModuleGrant{
		businessID: businessID,
		moduleCode: moduleCode,
		isActive:   true,
		expiryDate: expiryDate,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructModuleGrant rebuilds a grant from persistence.
func ReconstructModuleGrant(id, businessID uint, moduleCode string, isActive bool, expiryDate *time.Time, createdAt, updatedAt time.Time) (*ModuleGrant, error) {
	if id == 0 {
		return nil, fmt.Errorf("grant ID cannot be zero")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if moduleCode == "" {
		return nil, fmt.Errorf("module code is required")
	}

	return &ModuleGrant{
		id:         id,
		businessID: businessID,
		moduleCode: moduleCode,
		isActive:   isActive,
		expiryDate: expiryDate,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (g *ModuleGrant) ID() uint               { return g.id }
func (g *ModuleGrant) BusinessID() uint       { return g.businessID }
func (g *ModuleGrant) ModuleCode() string     { return g.moduleCode }
func (g *ModuleGrant) IsActive() bool         { return g.isActive }
func (g *ModuleGrant) ExpiryDate() *time.Time { return g.expiryDate }
func (g *ModuleGrant) CreatedAt() time.Time   { return g.createdAt }
func (g *ModuleGrant) UpdatedAt() time.Time   { return g.updatedAt }

// SetID sets the grant ID (only for persistence layer use)
func (g *ModuleGrant) SetID(id uint) error {
	if g.id != 0 {
		return fmt.Errorf("grant ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("grant ID cannot be zero")
	}
	g.id = id
	return nil
}

// Entitled reports whether the grant itself is usable at the given instant.
// The subscription's own status is checked separately by the resolver.
func (g *ModuleGrant) Entitled(now time.Time) bool {
	if !g.isActive {
		return false
	}
	if g.expiryDate != nil && g.expiryDate.Before(now) {
		return false
	}
	return true
}

// Activate re-enables the grant.
func (g *ModuleGrant) Activate(now time.Time) {
	if g.isActive {
		return
	}
	g.isActive = true
	g.updatedAt = now
}

// Deactivate disables the grant without deleting it.
func (g *ModuleGrant) Deactivate(now time.Time) {
	if !g.isActive {
		return
	}
	g.isActive = false
	g.updatedAt = now
}

// SetExpiry replaces the expiry date. A nil expiry removes it.
func (g *ModuleGrant) SetExpiry(expiryDate *time.Time, now time.Time) {
	g.expiryDate = expiryDate
	g.updatedAt = now
}

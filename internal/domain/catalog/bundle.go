package catalog

import (
	"fmt"
	"time"
)

// Bundle represents a discounted package of modules sold as one priced unit.
// The bundle price overrides the sum of its member module prices.
type Bundle struct {
	id          uint
	code        string
	name        string
	moduleCodes []string
	price       int64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewBundle(code, name string, moduleCodes []string, price int64) (*Bundle, error) {
	if code == "" {
		return nil, fmt.Errorf("bundle code is required")
	}
	if len(moduleCodes) == 0 {
		return nil, fmt.Errorf("bundle must contain at least one module")
	}
	if price < 0 {
		return nil, fmt.Errorf("bundle price cannot be negative")
	}

	now := time.Now().UTC()
	return &Bundle{
		code:        code,
		name:        name,
		moduleCodes: append([]string(nil), moduleCodes...),
		price:       price,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBundle(id uint, code, name string, moduleCodes []string, price int64, createdAt, updatedAt time.Time) (*Bundle, error) {
	if id == 0 {
		return nil, fmt.Errorf("bundle ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("bundle code is required")
	}

	return &Bundle{
		id:          id,
		code:        code,
		name:        name,
		moduleCodes: append([]string(nil), moduleCodes...),
		price:       price,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Bundle) ID() uint {
	return b.id
}

func (b *Bundle) Code() string {
	return b.code
}

func (b *Bundle) Name() string {
	return b.name
}

// ModuleCodes returns a copy of the member module codes.
func (b *Bundle) ModuleCodes() []string {
	return append([]string(nil), b.moduleCodes...)
}

// Price returns the monthly bundle price in cents.
func (b *Bundle) Price() int64 {
	return b.price
}

// Contains reports whether the bundle includes the given module code.
func (b *Bundle) Contains(moduleCode string) bool {
	for _, code := range b.moduleCodes {
		if code == moduleCode {
			return true
		}
	}
	return false
}

func (b *Bundle) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Bundle) UpdatedAt() time.Time {
	return b.updatedAt
}

package catalog

import (
	"fmt"
	"time"
)

// PromoCode represents a redeemable discount code. Redemption mutates
// usedCount; admin actions toggle the active flag.
type PromoCode struct {
	id              uint
	code            string
	discountPercent int
	maxUses         int
	usedCount       int
	expiresAt       *time.Time
	active          bool
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewPromoCode(code string, discountPercent, maxUses int, expiresAt *time.Time) (*PromoCode, error) {
	if code == "" {
		return nil, fmt.Errorf("promo code is required")
	}
	if discountPercent <= 0 || discountPercent > 100 {
		return nil, fmt.Errorf("discount percentage must be between 1 and 100")
	}
	if maxUses < 0 {
		return nil, fmt.Errorf("max uses cannot be negative")
	}

	now := time.Now().UTC()
	return &PromoCode{
		code:            code,
		discountPercent: discountPercent,
		maxUses:         maxUses,
		expiresAt:       expiresAt,
		active:          true,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructPromoCode(id uint, code string, discountPercent, maxUses, usedCount int, expiresAt *time.Time, active bool, version int, createdAt, updatedAt time.Time) (*PromoCode, error) {
	if id == 0 {
		return nil, fmt.Errorf("promo code ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("promo code is required")
	}

	return &PromoCode{
		id:              id,
		code:            code,
		discountPercent: discountPercent,
		maxUses:         maxUses,
		usedCount:       usedCount,
		expiresAt:       expiresAt,
		active:          active,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (p *PromoCode) ID() uint {
	return p.id
}

func (p *PromoCode) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("promo code ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("promo code ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *PromoCode) Code() string {
	return p.code
}

func (p *PromoCode) DiscountPercent() int {
	return p.discountPercent
}

func (p *PromoCode) MaxUses() int {
	return p.maxUses
}

func (p *PromoCode) UsedCount() int {
	return p.usedCount
}

func (p *PromoCode) ExpiresAt() *time.Time {
	return p.expiresAt
}

func (p *PromoCode) IsActive() bool {
	return p.active
}

func (p *PromoCode) Version() int {
	return p.version
}

func (p *PromoCode) CreatedAt() time.Time {
	return p.createdAt
}

func (p *PromoCode) UpdatedAt() time.Time {
	return p.updatedAt
}

// CheckRedeemable reports whether the code can be redeemed at the given
// time. Returns a typed error describing the first failing condition.
func (p *PromoCode) CheckRedeemable(now time.Time) error {
	if !p.active {
		return fmt.Errorf("%w: %s", ErrPromoCodeInactive, p.code)
	}
	if p.expiresAt != nil && p.expiresAt.Before(now) {
		return fmt.Errorf("%w: %s", ErrPromoCodeExpired, p.code)
	}
	if p.maxUses > 0 && p.usedCount >= p.maxUses {
		return fmt.Errorf("%w: %s", ErrPromoCodeExhausted, p.code)
	}
	return nil
}

// Redeem consumes one use of the code.
func (p *PromoCode) Redeem(now time.Time) error {
	if err := p.CheckRedeemable(now); err != nil {
		return err
	}
	p.usedCount++
	p.updatedAt = now
	p.version++
	return nil
}

// Activate enables the code.
func (p *PromoCode) Activate() {
	if p.active {
		return
	}
	p.active = true
	p.updatedAt = time.Now().UTC()
	p.version++
}

// Deactivate disables the code.
func (p *PromoCode) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = time.Now().UTC()
	p.version++
}

// Update replaces the admin-editable fields.
func (p *PromoCode) Update(discountPercent, maxUses int, expiresAt *time.Time) error {
	if discountPercent <= 0 || discountPercent > 100 {
		return fmt.Errorf("discount percentage must be between 1 and 100")
	}
	if maxUses < 0 {
		return fmt.Errorf("max uses cannot be negative")
	}
	p.discountPercent = discountPercent
	p.maxUses = maxUses
	p.expiresAt = expiresAt
	p.updatedAt = time.Now().UTC()
	p.version++
	return nil
}

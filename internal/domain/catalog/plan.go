package catalog

import (
	"fmt"
	"time"

	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

// Plan represents an immutable catalog entry for a subscription tier.
// MonthlyPrice is the undiscounted base price; CyclePrices hold the
// cycle-scoped catalog prices (not necessarily base price times months).
type Plan struct {
	id           uint
	tier         vo.PlanTier
	name         string
	monthlyPrice int64
	cyclePrices  map[vo.BillingCycle]int64
	userLimit    int
	productLimit int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewPlan(tier vo.PlanTier, name string, monthlyPrice int64, cyclePrices map[vo.BillingCycle]int64, userLimit, productLimit int) (*Plan, error) {
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid plan tier: %s", tier)
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if monthlyPrice < 0 {
		return nil, fmt.Errorf("monthly price cannot be negative")
	}
	for cycle, price := range cyclePrices {
		if !cycle.IsValid() {
			return nil, fmt.Errorf("invalid billing cycle in price table: %s", cycle)
		}
		if price < 0 {
			return nil, fmt.Errorf("cycle price cannot be negative: %s", cycle)
		}
	}

	now := time.Now().UTC()
	return &Plan{
		tier:         tier,
		name:         name,
		monthlyPrice: monthlyPrice,
		cyclePrices:  clonePrices(cyclePrices),
		userLimit:    userLimit,
		productLimit: productLimit,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(id uint, tier vo.PlanTier, name string, monthlyPrice int64, cyclePrices map[vo.BillingCycle]int64, userLimit, productLimit int, createdAt, updatedAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid plan tier: %s", tier)
	}

	return &Plan{
		id:           id,
		tier:         tier,
		name:         name,
		monthlyPrice: monthlyPrice,
		cyclePrices:  clonePrices(cyclePrices),
		userLimit:    userLimit,
		productLimit: productLimit,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func clonePrices(prices map[vo.BillingCycle]int64) map[vo.BillingCycle]int64 {
	cloned := make(map[vo.BillingCycle]int64, len(prices))
	for cycle, price := range prices {
		cloned[cycle] = price
	}
	return cloned
}

func (p *Plan) ID() uint {
	return p.id
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) Tier() vo.PlanTier {
	return p.tier
}

func (p *Plan) Name() string {
	return p.name
}

// MonthlyPrice returns the undiscounted base monthly price in cents.
func (p *Plan) MonthlyPrice() int64 {
	return p.monthlyPrice
}

// CyclePrice returns the catalog price for the given billing cycle.
func (p *Plan) CyclePrice(cycle vo.BillingCycle) (int64, error) {
	price, ok := p.cyclePrices[cycle]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCyclePriceMissing, cycle)
	}
	return price, nil
}

// CyclePrices returns a copy of the per-cycle price table.
func (p *Plan) CyclePrices() map[vo.BillingCycle]int64 {
	return clonePrices(p.cyclePrices)
}

func (p *Plan) UserLimit() int {
	return p.userLimit
}

func (p *Plan) ProductLimit() int {
	return p.productLimit
}

func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

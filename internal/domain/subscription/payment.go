package subscription

import (
	"fmt"
	"time"
)

// PaymentRecord is one entry of the append-only payment ledger. The unique
// transaction reference is the idempotency key guarding against duplicate
// webhook delivery; a reference is consumed at most once across all
// subscriptions and commission records.
type PaymentRecord struct {
	id             uint
	subscriptionID uint
	businessID     uint
	reference      string
	amount         int64
	durationDays   int
	moduleCodes    []string
	paidAt         time.Time
	createdAt      time.Time
}

// NewPaymentRecord appends a confirmed payment to the ledger.
func NewPaymentRecord(subscriptionID, businessID uint, reference string, amount int64, durationDays int, moduleCodes []string, paidAt time.Time) (*PaymentRecord, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if reference == "" {
		return nil, ErrReferenceRequired
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	return &PaymentRecord{
		subscriptionID: subscriptionID,
		businessID:     businessID,
		reference:      reference,
		amount:         amount,
		durationDays:   durationDays,
		moduleCodes:    append([]string(nil), moduleCodes...),
		paidAt:         paidAt,
		createdAt:      paidAt,
	}, nil
}

// ReconstructPaymentRecord rebuilds a ledger entry from persistence.
func ReconstructPaymentRecord(id, subscriptionID, businessID uint, reference string, amount int64, durationDays int, moduleCodes []string, paidAt, createdAt time.Time) (*PaymentRecord, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment record ID cannot be zero")
	}
	if reference == "" {
		return nil, ErrReferenceRequired
	}

	return &PaymentRecord{
		id:             id,
		subscriptionID: subscriptionID,
		businessID:     businessID,
		reference:      reference,
		amount:         amount,
		durationDays:   durationDays,
		moduleCodes:    moduleCodes,
		paidAt:         paidAt,
		createdAt:      createdAt,
	}, nil
}

func (p *PaymentRecord) ID() uint              { return p.id }
func (p *PaymentRecord) SubscriptionID() uint  { return p.subscriptionID }
func (p *PaymentRecord) BusinessID() uint      { return p.businessID }
func (p *PaymentRecord) Reference() string     { return p.reference }
func (p *PaymentRecord) Amount() int64         { return p.amount }
func (p *PaymentRecord) DurationDays() int     { return p.durationDays }
func (p *PaymentRecord) ModuleCodes() []string { return p.moduleCodes }
func (p *PaymentRecord) PaidAt() time.Time     { return p.paidAt }
func (p *PaymentRecord) CreatedAt() time.Time  { return p.createdAt }

// SetID sets the record ID (only for persistence layer use)
func (p *PaymentRecord) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment record ID cannot be zero")
	}
	p.id = id
	return nil
}

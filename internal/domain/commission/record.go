package commission

import (
	"fmt"
	"time"
)

// Type distinguishes a first-payment payout from a recurring one.
type Type string

const (
	TypeOnboarding Type = "onboarding"
	TypeRenewal    Type = "renewal"
)

func (t Type) IsValid() bool {
	return t == TypeOnboarding || t == TypeRenewal
}

// Status is the payout state of a record. Pending records move to paid only
// through an explicit admin action; nothing auto-transitions.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Record is one commission owed to an installer for one accepted payment.
// The transaction reference ties the record to the payment that produced it
// and guards against double-crediting.
type Record struct {
	id                   uint
	cid                  string
	installerID          uint
	businessID           uint
	commissionType       Type
	amount               int64
	status               Status
	transactionReference string
	paidAt               *time.Time
	paidBy               *uint
	createdAt            time.Time
	updatedAt            time.Time
}

// NewRecord creates a pending commission record.
func NewRecord(cid string, installerID, businessID uint, commissionType Type, amount int64, transactionReference string, now time.Time) (*Record, error) {
	if cid == "" {
		return nil, fmt.Errorf("commission cid is required")
	}
	if installerID == 0 {
		return nil, ErrInstallerRequired
	}
	if businessID == 0 {
		return nil, fmt.Errorf("business ID is required")
	}
	if !commissionType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommissionType, commissionType)
	}
	if amount < 0 {
		return nil, fmt.Errorf("commission amount must not be negative")
	}
	if transactionReference == "" {
		return nil, fmt.Errorf("transaction reference is required")
	}

	return &Record{
		cid:                  cid,
		installerID:          installerID,
		businessID:           businessID,
		commissionType:       commissionType,
		amount:               amount,
		status:               StatusPending,
		transactionReference: transactionReference,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

// ReconstructRecord rebuilds a commission record from persistence.
func ReconstructRecord(id uint, cid string, installerID, businessID uint, commissionType Type, amount int64, status Status, transactionReference string, paidAt *time.Time, paidBy *uint, createdAt, updatedAt time.Time) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("commission record ID cannot be zero")
	}
	if !commissionType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommissionType, commissionType)
	}

	return &Record{
		id:                   id,
		cid:                  cid,
		installerID:          installerID,
		businessID:           businessID,
		commissionType:       commissionType,
		amount:               amount,
		status:               status,
		transactionReference: transactionReference,
		paidAt:               paidAt,
		paidBy:               paidBy,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (r *Record) ID() uint                     { return r.id }
func (r *Record) CID() string                  { return r.cid }
func (r *Record) InstallerID() uint            { return r.installerID }
func (r *Record) BusinessID() uint             { return r.businessID }
func (r *Record) CommissionType() Type         { return r.commissionType }
func (r *Record) Amount() int64                { return r.amount }
func (r *Record) Status() Status               { return r.status }
func (r *Record) TransactionReference() string { return r.transactionReference }
func (r *Record) PaidAt() *time.Time           { return r.paidAt }
func (r *Record) PaidBy() *uint                { return r.paidBy }
func (r *Record) CreatedAt() time.Time         { return r.createdAt }
func (r *Record) UpdatedAt() time.Time         { return r.updatedAt }

// SetID sets the record ID (only for persistence layer use)
func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("commission record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("commission record ID cannot be zero")
	}
	r.id = id
	return nil
}

// MarkPaid settles a pending record. Only an admin invokes this; a record
// already paid cannot be paid again.
func (r *Record) MarkPaid(adminID uint, now time.Time) error {
	if r.status == StatusPaid {
		return ErrRecordAlreadyPaid
	}

	r.status = StatusPaid
	r.paidAt = &now
	r.paidBy = &adminID
	r.updatedAt = now

	return nil
}

package commission

import "context"

// PolicyRepository manages the single global commission policy row.
type PolicyRepository interface {
	// Get returns the current policy, or ErrPolicyNotFound when none has
	// been configured yet.
	Get(ctx context.Context) (*Policy, error)
	Save(ctx context.Context, policy *Policy) error
}

// RecordFilter narrows commission record listings.
type RecordFilter struct {
	InstallerID *uint
	BusinessID  *uint
	Status      *Status
	Type        *Type
}

// RecordRepository manages commission record persistence. Create must fail
// on a transaction reference already carrying a record of the same type.
type RecordRepository interface {
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id uint) (*Record, error)
	GetByCID(ctx context.Context, cid string) (*Record, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter RecordFilter, offset, limit int) ([]*Record, int64, error)
}

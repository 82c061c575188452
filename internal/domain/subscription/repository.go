package subscription

import "context"

// Repository manages subscription persistence. Writes must carry the
// aggregate version for optimistic locking.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	// GetCurrentByBusinessID returns the business's current non-cancelled
	// subscription, or ErrSubscriptionNotFound.
	GetCurrentByBusinessID(ctx context.Context, businessID uint) (*Subscription, error)
	List(ctx context.Context, offset, limit int) ([]*Subscription, int64, error)
}

// PaymentLedgerRepository is the append-only ledger of confirmed payments.
// Append must fail on a duplicate reference; that constraint is the
// idempotency guard.
type PaymentLedgerRepository interface {
	Append(ctx context.Context, record *PaymentRecord) error
	GetByReference(ctx context.Context, reference string) (*PaymentRecord, error)
	CountByBusinessID(ctx context.Context, businessID uint) (int64, error)
	// FirstByBusinessID returns the business's earliest payment, used as the
	// onboarding date for commission eligibility windows.
	FirstByBusinessID(ctx context.Context, businessID uint) (*PaymentRecord, error)
	ListByBusinessID(ctx context.Context, businessID uint, offset, limit int) ([]*PaymentRecord, int64, error)
}

// ModuleGrantRepository manages per-business module grants.
type ModuleGrantRepository interface {
	Create(ctx context.Context, grant *ModuleGrant) error
	Update(ctx context.Context, grant *ModuleGrant) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ModuleGrant, error)
	GetByBusinessAndModule(ctx context.Context, businessID uint, moduleCode string) (*ModuleGrant, error)
	ListByBusinessID(ctx context.Context, businessID uint) ([]*ModuleGrant, error)
	// ReplaceForBusiness atomically swaps the business's grant set for the
	// modules included in a payment. Expiry aligns with the subscription end
	// date when non-nil.
	ReplaceForBusiness(ctx context.Context, businessID uint, grants []*ModuleGrant) error
}

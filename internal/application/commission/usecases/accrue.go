package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/domain/subscription"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

// AccrualService turns accepted payments into pending commission records.
// It is invoked inside the payment transaction, at most once per
// transaction reference; failing eligibility is a silent no-op.
type AccrualService struct {
	policyRepo commission.PolicyRepository
	recordRepo commission.RecordRepository
	ledgerRepo subscription.PaymentLedgerRepository
	engine     *commission.Engine
	logger     logger.Interface
}

func NewAccrualService(
	policyRepo commission.PolicyRepository,
	recordRepo commission.RecordRepository,
	ledgerRepo subscription.PaymentLedgerRepository,
	engine *commission.Engine,
	logger logger.Interface,
) *AccrualService {
	return &AccrualService{
		policyRepo: policyRepo,
		recordRepo: recordRepo,
		ledgerRepo: ledgerRepo,
		engine:     engine,
		logger:     logger,
	}
}

func (s *AccrualService) Accrue(ctx context.Context, sub *subscription.Subscription, reference string, amount int64, durationDays int, paidAt time.Time) error {
	if sub.InstallerID() == nil {
		return nil
	}

	exists, err := s.recordRepo.ExistsByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to check commission records: %w", err)
	}
	if exists {
		return apperrors.NewConflictError("commission already credited for reference", reference)
	}

	policy, err := s.policyRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, commission.ErrPolicyNotFound) {
			return fmt.Errorf("failed to load commission policy: %w", err)
		}
		policy = commission.DefaultPolicy(paidAt)
	}

	event, err := s.buildEvent(ctx, sub, reference, amount, durationDays, paidAt)
	if err != nil {
		return err
	}

	record, eligible, err := s.engine.Evaluate(policy, event)
	if err != nil {
		return fmt.Errorf("failed to evaluate commission: %w", err)
	}
	if !eligible {
		s.logger.Debugw("payment earned no commission",
			"business_id", sub.BusinessID(),
			"reference", reference,
		)
		return nil
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("commission already credited for reference", reference)
		}
		return fmt.Errorf("failed to create commission record: %w", err)
	}

	s.logger.Infow("commission accrued",
		"cid", record.CID(),
		"type", record.CommissionType(),
		"installer_id", record.InstallerID(),
		"business_id", record.BusinessID(),
		"amount", record.Amount(),
	)

	return nil
}

// buildEvent derives first-payment and onboarding-date facts from the
// ledger, which at this point already contains the payment being accrued.
func (s *AccrualService) buildEvent(ctx context.Context, sub *subscription.Subscription, reference string, amount int64, durationDays int, paidAt time.Time) (commission.PaymentEvent, error) {
	count, err := s.ledgerRepo.CountByBusinessID(ctx, sub.BusinessID())
	if err != nil {
		return commission.PaymentEvent{}, fmt.Errorf("failed to count payments: %w", err)
	}

	event := commission.PaymentEvent{
		BusinessID:   sub.BusinessID(),
		InstallerID:  sub.InstallerID(),
		Reference:    reference,
		Amount:       amount,
		DurationDays: durationDays,
		PaidAt:       paidAt,
		FirstPayment: count <= 1,
	}

	if !event.FirstPayment {
		first, err := s.ledgerRepo.FirstByBusinessID(ctx, sub.BusinessID())
		if err != nil && !errors.Is(err, subscription.ErrPaymentNotFound) {
			return commission.PaymentEvent{}, fmt.Errorf("failed to load first payment: %w", err)
		}
		if first != nil {
			onboardedAt := first.PaidAt()
			event.OnboardedAt = &onboardedAt
		}
	}

	return event, nil
}

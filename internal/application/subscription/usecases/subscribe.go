package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	pricingusecases "github.com/servio-inc/servio/internal/application/pricing/usecases"
	"github.com/servio-inc/servio/internal/domain/billing"
	"github.com/servio-inc/servio/internal/domain/catalog"
	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/db"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/id"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type SubscribeCommand struct {
	BusinessID  uint
	PlanTier    string
	Cycle       string
	ModuleCodes []string
	BundleCode  string
	PromoCode   string
	// Reference is the payment gateway transaction reference. It is the
	// idempotency key for the whole command.
	Reference   string
	InstallerID *uint
}

type SubscribeResult struct {
	Subscription *subscription.Subscription
	Quote        *billing.Quote
	Grants       []*subscription.ModuleGrant
	// Idempotent is true when the reference had already been applied to this
	// business and the existing state was returned unchanged.
	Idempotent bool
}

// SubscribeUseCase applies a verified payment confirmation: it activates or
// renews the subscription, appends the payment to the ledger, replaces the
// module grants, redeems the promo code and accrues any installer
// commission, all in one transaction.
type SubscribeUseCase struct {
	subscriptionRepo subscription.Repository
	ledgerRepo       subscription.PaymentLedgerRepository
	grantRepo        subscription.ModuleGrantRepository
	promoRepo        catalog.PromoCodeRepository
	resolver         *pricingusecases.SelectionResolver
	calculator       *billing.QuoteCalculator
	verifier         PaymentVerifier
	accrual          CommissionAccrual
	txManager        *db.TransactionManager
	statusCache      StatusCache
	logger           logger.Interface
}

func NewSubscribeUseCase(
	subscriptionRepo subscription.Repository,
	ledgerRepo subscription.PaymentLedgerRepository,
	grantRepo subscription.ModuleGrantRepository,
	promoRepo catalog.PromoCodeRepository,
	resolver *pricingusecases.SelectionResolver,
	calculator *billing.QuoteCalculator,
	verifier PaymentVerifier,
	accrual CommissionAccrual,
	txManager *db.TransactionManager,
	statusCache StatusCache,
	logger logger.Interface,
) *SubscribeUseCase {
	return &SubscribeUseCase{
		subscriptionRepo: subscriptionRepo,
		ledgerRepo:       ledgerRepo,
		grantRepo:        grantRepo,
		promoRepo:        promoRepo,
		resolver:         resolver,
		calculator:       calculator,
		verifier:         verifier,
		accrual:          accrual,
		txManager:        txManager,
		statusCache:      statusCache,
		logger:           logger,
	}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, cmd SubscribeCommand) (*SubscribeResult, error) {
	if cmd.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}
	if cmd.Reference == "" {
		return nil, apperrors.NewValidationError("transaction reference is required")
	}

	// Idempotency guard: a reference already applied to this business
	// returns the existing state; one consumed by a different business is a
	// hard conflict.
	if result, err := uc.replayExisting(ctx, cmd); result != nil || err != nil {
		return result, err
	}

	now := biztime.NowUTC()
	input, err := uc.resolver.Resolve(ctx, pricingusecases.Selection{
		PlanTier:    cmd.PlanTier,
		Cycle:       cmd.Cycle,
		ModuleCodes: cmd.ModuleCodes,
		BundleCode:  cmd.BundleCode,
		PromoCode:   cmd.PromoCode,
	}, now)
	if err != nil {
		return nil, err
	}

	quote, err := uc.calculator.Calculate(input)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid selection", err.Error())
	}

	if err := uc.verifier.Verify(ctx, cmd.Reference, quote.FinalTotal); err != nil {
		uc.logger.Warnw("payment verification failed",
			"reference", cmd.Reference,
			"business_id", cmd.BusinessID,
			"error", err,
		)
		return nil, err
	}

	var (
		sub    *subscription.Subscription
		grants []*subscription.ModuleGrant
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err = uc.currentOrPending(txCtx, cmd, input, now)
		if err != nil {
			return err
		}

		if err := sub.ActivateWithPayment(cmd.Reference, quote.FinalTotal, input.Cycle, now); err != nil {
			if errors.Is(err, subscription.ErrInvalidStatusTransition) {
				return apperrors.NewConflictError("subscription cannot accept payments", err.Error())
			}
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		grantCodes := effectiveModuleCodes(input)
		record, err := subscription.NewPaymentRecord(
			sub.ID(), cmd.BusinessID, cmd.Reference, quote.FinalTotal, input.Cycle.Days(), grantCodes, now)
		if err != nil {
			return err
		}
		if err := uc.ledgerRepo.Append(txCtx, record); err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError("transaction reference already consumed", cmd.Reference)
			}
			return fmt.Errorf("failed to append payment record: %w", err)
		}

		if input.Promo != nil {
			if err := input.Promo.Redeem(now); err != nil {
				return apperrors.NewValidationError("promo code not redeemable", err.Error())
			}
			if err := uc.promoRepo.Update(txCtx, input.Promo); err != nil {
				return fmt.Errorf("failed to redeem promo code: %w", err)
			}
		}

		grants, err = buildGrants(cmd.BusinessID, grantCodes, sub.EndDate(), now)
		if err != nil {
			return err
		}
		if err := uc.grantRepo.ReplaceForBusiness(txCtx, cmd.BusinessID, grants); err != nil {
			return fmt.Errorf("failed to replace module grants: %w", err)
		}

		return uc.accrual.Accrue(txCtx, sub, cmd.Reference, quote.FinalTotal, input.Cycle.Days(), now)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.statusCache.Invalidate(ctx, cmd.BusinessID); err != nil {
		uc.logger.Warnw("failed to invalidate status cache", "error", err, "business_id", cmd.BusinessID)
	}

	uc.logger.Infow("subscription payment applied",
		"business_id", cmd.BusinessID,
		"sid", sub.SID(),
		"reference", cmd.Reference,
		"amount", quote.FinalTotal,
		"cycle", input.Cycle,
	)

	return &SubscribeResult{
		Subscription: sub,
		Quote:        quote,
		Grants:       grants,
	}, nil
}

// replayExisting handles a reference that has already been consumed.
func (uc *SubscribeUseCase) replayExisting(ctx context.Context, cmd SubscribeCommand) (*SubscribeResult, error) {
	record, err := uc.ledgerRepo.GetByReference(ctx, cmd.Reference)
	if err != nil {
		if errors.Is(err, subscription.ErrPaymentNotFound) {
			return nil, nil
		}
		uc.logger.Errorw("failed to check payment ledger", "error", err, "reference", cmd.Reference)
		return nil, fmt.Errorf("failed to check payment ledger: %w", err)
	}

	if record.BusinessID() != cmd.BusinessID {
		return nil, apperrors.NewConflictError("transaction reference already consumed", cmd.Reference)
	}

	sub, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, cmd.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription for replay: %w", err)
	}
	grants, err := uc.grantRepo.ListByBusinessID(ctx, cmd.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grants for replay: %w", err)
	}

	uc.logger.Infow("duplicate subscribe replayed idempotently",
		"business_id", cmd.BusinessID,
		"reference", cmd.Reference,
	)

	return &SubscribeResult{
		Subscription: sub,
		Grants:       grants,
		Idempotent:   true,
	}, nil
}

// currentOrPending loads the business's subscription, creating a
// pending-payment row for a business paying without prior registration.
func (uc *SubscribeUseCase) currentOrPending(ctx context.Context, cmd SubscribeCommand, input billing.QuoteInput, now time.Time) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, cmd.BusinessID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription sid: %w", err)
	}
	sub, err = subscription.NewPendingSubscription(sid, cmd.BusinessID, input.Plan.Tier(), cmd.InstallerID, now)
	if err != nil {
		return nil, err
	}
	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// effectiveModuleCodes is the module set granted by a payment: the selected
// modules plus every member of the selected bundle.
func effectiveModuleCodes(input billing.QuoteInput) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, module := range input.Modules {
		if module == nil || seen[module.Code()] {
			continue
		}
		seen[module.Code()] = true
		codes = append(codes, module.Code())
	}
	if input.Bundle != nil {
		for _, code := range input.Bundle.ModuleCodes() {
			if seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

func buildGrants(businessID uint, codes []string, expiry time.Time, now time.Time) ([]*subscription.ModuleGrant, error) {
	grants := make([]*subscription.ModuleGrant, 0, len(codes))
	for _, code := range codes {
		grant, err := subscription.NewModuleGrant(businessID, code, &expiry, now)
		if err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

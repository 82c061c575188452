package usecases

import (
	"context"

	"github.com/servio-inc/servio/internal/domain/billing"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type QuotePriceCommand struct {
	PlanTier    string
	Cycle       string
	ModuleCodes []string
	BundleCode  string
	PromoCode   string
}

type QuotePriceUseCase struct {
	resolver   *SelectionResolver
	calculator *billing.QuoteCalculator
	logger     logger.Interface
}

func NewQuotePriceUseCase(resolver *SelectionResolver, calculator *billing.QuoteCalculator, logger logger.Interface) *QuotePriceUseCase {
	return &QuotePriceUseCase{
		resolver:   resolver,
		calculator: calculator,
		logger:     logger,
	}
}

func (uc *QuotePriceUseCase) Execute(ctx context.Context, cmd QuotePriceCommand) (*billing.Quote, error) {
	now := biztime.NowUTC()

	input, err := uc.resolver.Resolve(ctx, Selection{
		PlanTier:    cmd.PlanTier,
		Cycle:       cmd.Cycle,
		ModuleCodes: cmd.ModuleCodes,
		BundleCode:  cmd.BundleCode,
		PromoCode:   cmd.PromoCode,
	}, now)
	if err != nil {
		if !apperrors.IsValidationError(err) {
			uc.logger.Errorw("failed to resolve selection", "error", err, "tier", cmd.PlanTier)
		}
		return nil, err
	}

	quote, err := uc.calculator.Calculate(input)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid selection", err.Error())
	}

	return quote, nil
}

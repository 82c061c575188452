package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type UpdatePolicyCommand struct {
	OnboardingRate          int
	RenewalRate             int
	EnableRenewalCommission bool
	MinRenewalDays          int
	CommissionDurationDays  int
	AdminID                 uint
}

type UpdatePolicyUseCase struct {
	policyRepo commission.PolicyRepository
	logger     logger.Interface
}

func NewUpdatePolicyUseCase(policyRepo commission.PolicyRepository, logger logger.Interface) *UpdatePolicyUseCase {
	return &UpdatePolicyUseCase{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

func (uc *UpdatePolicyUseCase) Execute(ctx context.Context, cmd UpdatePolicyCommand) (*commission.Policy, error) {
	now := biztime.NowUTC()
	adminID := cmd.AdminID

	policy, err := uc.policyRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, commission.ErrPolicyNotFound) {
			uc.logger.Errorw("failed to load commission policy", "error", err)
			return nil, fmt.Errorf("failed to load commission policy: %w", err)
		}
		policy, err = commission.NewPolicy(
			cmd.OnboardingRate, cmd.RenewalRate, cmd.EnableRenewalCommission,
			cmd.MinRenewalDays, cmd.CommissionDurationDays, now)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid commission policy", err.Error())
		}
	} else {
		if err := policy.Update(
			cmd.OnboardingRate, cmd.RenewalRate, cmd.EnableRenewalCommission,
			cmd.MinRenewalDays, cmd.CommissionDurationDays, &adminID, now); err != nil {
			return nil, apperrors.NewValidationError("invalid commission policy", err.Error())
		}
	}

	if err := uc.policyRepo.Save(ctx, policy); err != nil {
		uc.logger.Errorw("failed to save commission policy", "error", err)
		return nil, fmt.Errorf("failed to save commission policy: %w", err)
	}

	uc.logger.Infow("commission policy updated",
		"onboarding_rate", cmd.OnboardingRate,
		"renewal_rate", cmd.RenewalRate,
		"enable_renewal", cmd.EnableRenewalCommission,
		"admin_id", cmd.AdminID,
	)

	return policy, nil
}

package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/servio-inc/servio/internal/domain/commission"
	"github.com/servio-inc/servio/internal/shared/biztime"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type GetPolicyUseCase struct {
	policyRepo commission.PolicyRepository
	logger     logger.Interface
}

func NewGetPolicyUseCase(policyRepo commission.PolicyRepository, logger logger.Interface) *GetPolicyUseCase {
	return &GetPolicyUseCase{
		policyRepo: policyRepo,
		logger:     logger,
	}
}

// Execute returns the configured policy, falling back to the default when
// no admin has saved one yet.
func (uc *GetPolicyUseCase) Execute(ctx context.Context) (*commission.Policy, error) {
	policy, err := uc.policyRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, commission.ErrPolicyNotFound) {
			return commission.DefaultPolicy(biztime.NowUTC()), nil
		}
		uc.logger.Errorw("failed to load commission policy", "error", err)
		return nil, fmt.Errorf("failed to load commission policy: %w", err)
	}
	return policy, nil
}

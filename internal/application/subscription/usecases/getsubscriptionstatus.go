package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/servio-inc/servio/internal/domain/subscription"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
	"github.com/servio-inc/servio/internal/shared/biztime"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type GetSubscriptionStatusQuery struct {
	BusinessID uint
	// OperatorBypass marks a super-admin caller who is treated as
	// always-active with no expiry.
	OperatorBypass bool
	// SkipCache forces a read from persisted truth.
	SkipCache bool
}

// GetSubscriptionStatusUseCase answers status queries from persisted truth,
// evaluating grace period and expiry lazily against the clock. Snapshots
// are cached with explicit invalidation on every write path.
type GetSubscriptionStatusUseCase struct {
	subscriptionRepo subscription.Repository
	grantRepo        subscription.ModuleGrantRepository
	statusCache      StatusCache
	graceDays        int
	logger           logger.Interface
}

func NewGetSubscriptionStatusUseCase(
	subscriptionRepo subscription.Repository,
	grantRepo subscription.ModuleGrantRepository,
	statusCache StatusCache,
	graceDays int,
	logger logger.Interface,
) *GetSubscriptionStatusUseCase {
	return &GetSubscriptionStatusUseCase{
		subscriptionRepo: subscriptionRepo,
		grantRepo:        grantRepo,
		statusCache:      statusCache,
		graceDays:        graceDays,
		logger:           logger,
	}
}

func (uc *GetSubscriptionStatusUseCase) Execute(ctx context.Context, query GetSubscriptionStatusQuery) (*StatusSnapshot, error) {
	if query.BusinessID == 0 {
		return nil, apperrors.NewValidationError("business ID is required")
	}

	now := biztime.NowUTC()

	if query.OperatorBypass {
		return &StatusSnapshot{
			BusinessID:     query.BusinessID,
			Status:         vo.StatusActive,
			Grants:         []GrantSnapshot{},
			EvaluatedAt:    now,
			OperatorBypass: true,
		}, nil
	}

	if !query.SkipCache {
		if snapshot, err := uc.statusCache.Get(ctx, query.BusinessID); err == nil && snapshot != nil {
			return refreshSnapshot(snapshot, now, uc.graceDays), nil
		}
	}

	sub, err := uc.subscriptionRepo.GetCurrentByBusinessID(ctx, query.BusinessID)
	if err != nil {
		if errors.Is(err, subscription.ErrSubscriptionNotFound) {
			snapshot := &StatusSnapshot{
				BusinessID:  query.BusinessID,
				Status:      vo.StatusNone,
				Grants:      []GrantSnapshot{},
				EvaluatedAt: now,
			}
			return snapshot, nil
		}
		uc.logger.Errorw("failed to load subscription", "error", err, "business_id", query.BusinessID)
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}

	grants, err := uc.grantRepo.ListByBusinessID(ctx, query.BusinessID)
	if err != nil {
		uc.logger.Errorw("failed to load module grants", "error", err, "business_id", query.BusinessID)
		return nil, fmt.Errorf("failed to load module grants: %w", err)
	}

	snapshot := buildSnapshot(sub, grants, now, uc.graceDays)

	if err := uc.statusCache.Set(ctx, query.BusinessID, snapshot); err != nil {
		uc.logger.Warnw("failed to cache status snapshot", "error", err, "business_id", query.BusinessID)
	}

	return snapshot, nil
}

// refreshSnapshot re-evaluates a cached snapshot against the clock. Grace
// period and expiry derive from the end date, so a snapshot cached minutes
// ago must not freeze the lifecycle state it was computed with.
func refreshSnapshot(snapshot *StatusSnapshot, now time.Time, graceDays int) *StatusSnapshot {
	effective := snapshot.Status
	switch effective {
	case vo.StatusNone, vo.StatusCancelled, vo.StatusPendingPayment, vo.StatusExpired:
		// No clock-derived transition remains; a renewal payment invalidates
		// the cache entry instead.
	default:
		if snapshot.EndDate != nil && now.After(*snapshot.EndDate) {
			graceEnd := snapshot.EndDate.AddDate(0, 0, graceDays)
			if !now.After(graceEnd) {
				effective = vo.StatusGracePeriod
			} else {
				effective = vo.StatusExpired
			}
		}
	}

	refreshed := *snapshot
	refreshed.Status = effective
	refreshed.EvaluatedAt = now

	entitled := effective.IsEntitled()
	grants := make([]GrantSnapshot, len(snapshot.Grants))
	for i, grant := range snapshot.Grants {
		grant.Entitled = entitled && grant.IsActive &&
			(grant.ExpiryDate == nil || !grant.ExpiryDate.Before(now))
		grants[i] = grant
	}
	refreshed.Grants = grants

	return &refreshed
}

func buildSnapshot(sub *subscription.Subscription, grants []*subscription.ModuleGrant, now time.Time, graceDays int) *StatusSnapshot {
	effective := sub.EffectiveStatus(now, graceDays)
	entitled := effective.IsEntitled()

	grantSnapshots := make([]GrantSnapshot, 0, len(grants))
	for _, grant := range grants {
		grantSnapshots = append(grantSnapshots, GrantSnapshot{
			ModuleCode: grant.ModuleCode(),
			IsActive:   grant.IsActive(),
			ExpiryDate: grant.ExpiryDate(),
			Entitled:   entitled && grant.Entitled(now),
		})
	}

	startDate := sub.StartDate()
	snapshot := &StatusSnapshot{
		BusinessID:  sub.BusinessID(),
		SID:         sub.SID(),
		Status:      effective,
		PlanTier:    sub.PlanTier().String(),
		Cycle:       sub.Cycle().String(),
		StartDate:   &startDate,
		AmountPaid:  sub.AmountPaid(),
		Grants:      grantSnapshots,
		EvaluatedAt: now,
	}
	if !sub.EndDate().IsZero() {
		endDate := sub.EndDate()
		snapshot.EndDate = &endDate
	}
	return snapshot
}

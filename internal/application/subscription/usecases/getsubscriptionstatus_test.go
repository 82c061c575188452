package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
	"github.com/servio-inc/servio/internal/shared/logger"
)

// seededStatusCache always hits with the snapshot it was given.
type seededStatusCache struct {
	snapshot *StatusSnapshot
}

func (s *seededStatusCache) Get(ctx context.Context, businessID uint) (*StatusSnapshot, error) {
	return s.snapshot, nil
}

func (s *seededStatusCache) Set(ctx context.Context, businessID uint, snapshot *StatusSnapshot) error {
	return nil
}

func (s *seededStatusCache) Invalidate(ctx context.Context, businessID uint) error {
	return nil
}

func cachedSnapshot(t *testing.T, status vo.SubscriptionStatus, endDate time.Time, grants []GrantSnapshot) *StatusSnapshot {
	t.Helper()

	return &StatusSnapshot{
		BusinessID:  81,
		SID:         "sub_cached81",
		Status:      status,
		PlanTier:    "growth",
		Cycle:       "monthly",
		EndDate:     &endDate,
		Grants:      grants,
		EvaluatedAt: endDate.AddDate(0, 0, -1),
	}
}

func TestGetSubscriptionStatusUseCase_CacheHitReevaluatesClock(t *testing.T) {
	ctx := context.Background()
	const graceDays = 3

	statusUC := func(snapshot *StatusSnapshot) *GetSubscriptionStatusUseCase {
		return NewGetSubscriptionStatusUseCase(nil, nil, &seededStatusCache{snapshot: snapshot}, graceDays, logger.NewNoop())
	}

	t.Run("end date passed since caching degrades to grace period", func(t *testing.T) {
		snapshot := cachedSnapshot(t, vo.StatusActive, time.Now().UTC().Add(-time.Minute), nil)

		result, err := statusUC(snapshot).Execute(ctx, GetSubscriptionStatusQuery{BusinessID: 81})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusGracePeriod, result.Status)
	})

	t.Run("grace window elapsed since caching reads as expired", func(t *testing.T) {
		snapshot := cachedSnapshot(t, vo.StatusGracePeriod, time.Now().UTC().AddDate(0, 0, -(graceDays+1)), nil)

		result, err := statusUC(snapshot).Execute(ctx, GetSubscriptionStatusQuery{BusinessID: 81})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusExpired, result.Status)
	})

	t.Run("end date still ahead keeps the cached status", func(t *testing.T) {
		snapshot := cachedSnapshot(t, vo.StatusActive, time.Now().UTC().Add(time.Hour), nil)

		result, err := statusUC(snapshot).Execute(ctx, GetSubscriptionStatusQuery{BusinessID: 81})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActive, result.Status)
	})

	t.Run("grant entitlement is recomputed with the status", func(t *testing.T) {
		grantExpiry := time.Now().UTC().Add(-time.Minute)
		snapshot := cachedSnapshot(t, vo.StatusActive, time.Now().UTC().AddDate(0, 0, -(graceDays+1)), []GrantSnapshot{
			{ModuleCode: "inventory", IsActive: true, Entitled: true},
			{ModuleCode: "kitchen_display", IsActive: true, ExpiryDate: &grantExpiry, Entitled: true},
		})

		result, err := statusUC(snapshot).Execute(ctx, GetSubscriptionStatusQuery{BusinessID: 81})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusExpired, result.Status)
		require.Len(t, result.Grants, 2)
		assert.False(t, result.Grants[0].Entitled)
		assert.False(t, result.Grants[1].Entitled)
	})

	t.Run("cancelled snapshot is left alone", func(t *testing.T) {
		snapshot := cachedSnapshot(t, vo.StatusCancelled, time.Now().UTC().Add(-time.Hour), nil)

		result, err := statusUC(snapshot).Execute(ctx, GetSubscriptionStatusQuery{BusinessID: 81})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusCancelled, result.Status)
	})
}

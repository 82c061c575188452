package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cvo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/domain/subscription"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/migrations"
	"github.com/servio-inc/servio/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.MigrateAll(db))
	return db
}

func createTrialSubscription(t *testing.T, businessID uint) *subscription.Subscription {
	t.Helper()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sid := fmt.Sprintf("sub_test%d", businessID)
	sub, err := subscription.NewTrialSubscription(sid, businessID, cvo.TierGrowth, nil, 14, now)
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewNoop())
	ctx := context.Background()

	t.Run("create assigns ID and round-trips", func(t *testing.T) {
		sub := createTrialSubscription(t, 101)
		require.NoError(t, repo.Create(ctx, sub))
		assert.NotZero(t, sub.ID())

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, sub.SID(), found.SID())
		assert.Equal(t, uint(101), found.BusinessID())
		assert.Equal(t, vo.StatusTrialing, found.Status())
		assert.Equal(t, cvo.TierGrowth, found.PlanTier())
		assert.True(t, found.EndDate().Equal(sub.EndDate()))
	})

	t.Run("missing ID returns not found sentinel", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	})
}

func TestSubscriptionRepository_GetCurrentByBusinessID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewNoop())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no subscription returns sentinel", func(t *testing.T) {
		_, err := repo.GetCurrentByBusinessID(ctx, 404)
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	})

	t.Run("cancelled subscription is skipped", func(t *testing.T) {
		sub := createTrialSubscription(t, 202)
		require.NoError(t, repo.Create(ctx, sub))
		require.NoError(t, sub.Cancel("churned", now))
		require.NoError(t, repo.Update(ctx, sub))

		_, err := repo.GetCurrentByBusinessID(ctx, 202)
		assert.ErrorIs(t, err, subscription.ErrSubscriptionNotFound)
	})

	t.Run("active subscription is returned", func(t *testing.T) {
		sub := createTrialSubscription(t, 303)
		require.NoError(t, repo.Create(ctx, sub))

		found, err := repo.GetCurrentByBusinessID(ctx, 303)
		require.NoError(t, err)
		assert.Equal(t, sub.ID(), found.ID())
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewNoop())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("activation round-trips cycle and end date", func(t *testing.T) {
		sub := createTrialSubscription(t, 404)
		require.NoError(t, repo.Create(ctx, sub))

		require.NoError(t, sub.ActivateWithPayment("txn_abc123", 63300, cvo.BillingCycleAnnual, now))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActive, found.Status())
		assert.Equal(t, cvo.BillingCycleAnnual, found.Cycle())
		assert.Equal(t, int64(63300), found.AmountPaid())
		assert.Equal(t, "txn_abc123", found.LastReference())
		assert.True(t, found.EndDate().Equal(cvo.BillingCycleAnnual.NextExpiry(now)))
	})

	t.Run("stale version loses the write", func(t *testing.T) {
		sub := createTrialSubscription(t, 505)
		require.NoError(t, repo.Create(ctx, sub))

		first, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)

		require.NoError(t, first.Cancel("winner", now))
		require.NoError(t, repo.Update(ctx, first))

		require.NoError(t, second.Cancel("loser", now))
		err = repo.Update(ctx, second)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "version conflict")
	})
}

func TestPaymentLedgerRepository(t *testing.T) {
	db := setupTestDB(t)
	subRepo := NewSubscriptionRepository(db, logger.NewNoop())
	ledger := NewPaymentLedgerRepository(db, logger.NewNoop())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sub := createTrialSubscription(t, 606)
	require.NoError(t, subRepo.Create(ctx, sub))

	newRecord := func(t *testing.T, reference string, paidAt time.Time) *subscription.PaymentRecord {
		t.Helper()
		record, err := subscription.NewPaymentRecord(sub.ID(), 606, reference, 63300, 365, []string{"inventory"}, paidAt)
		require.NoError(t, err)
		return record
	}

	t.Run("append and fetch by reference", func(t *testing.T) {
		require.NoError(t, ledger.Append(ctx, newRecord(t, "txn_first", now)))

		found, err := ledger.GetByReference(ctx, "txn_first")
		require.NoError(t, err)
		assert.Equal(t, uint(606), found.BusinessID())
		assert.Equal(t, int64(63300), found.Amount())
		assert.Equal(t, []string{"inventory"}, found.ModuleCodes())
	})

	t.Run("duplicate reference is rejected", func(t *testing.T) {
		err := ledger.Append(ctx, newRecord(t, "txn_first", now))
		assert.Error(t, err)
	})

	t.Run("unknown reference returns sentinel", func(t *testing.T) {
		_, err := ledger.GetByReference(ctx, "txn_missing")
		assert.ErrorIs(t, err, subscription.ErrPaymentNotFound)
	})

	t.Run("count and first payment", func(t *testing.T) {
		require.NoError(t, ledger.Append(ctx, newRecord(t, "txn_second", now.AddDate(0, 0, 30))))

		count, err := ledger.CountByBusinessID(ctx, 606)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		first, err := ledger.FirstByBusinessID(ctx, 606)
		require.NoError(t, err)
		assert.Equal(t, "txn_first", first.Reference())
	})
}

func TestModuleGrantRepository_ReplaceForBusiness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewModuleGrantRepository(db, logger.NewNoop())
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(1, 0, 0)

	newGrant := func(t *testing.T, code string) *subscription.ModuleGrant {
		t.Helper()
		grant, err := subscription.NewModuleGrant(707, code, &expiry, now)
		require.NoError(t, err)
		return grant
	}

	t.Run("replace installs the new grant set", func(t *testing.T) {
		grants := []*subscription.ModuleGrant{newGrant(t, "inventory"), newGrant(t, "loyalty")}
		require.NoError(t, repo.ReplaceForBusiness(ctx, 707, grants))

		listed, err := repo.ListByBusinessID(ctx, 707)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, "inventory", listed[0].ModuleCode())
		assert.Equal(t, "loyalty", listed[1].ModuleCode())
	})

	t.Run("replace drops modules no longer paid for and keeps re-granted IDs", func(t *testing.T) {
		before, err := repo.GetByBusinessAndModule(ctx, 707, "inventory")
		require.NoError(t, err)

		require.NoError(t, repo.ReplaceForBusiness(ctx, 707, []*subscription.ModuleGrant{newGrant(t, "inventory")}))

		listed, err := repo.ListByBusinessID(ctx, 707)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "inventory", listed[0].ModuleCode())
		assert.Equal(t, before.ID(), listed[0].ID())

		_, err = repo.GetByBusinessAndModule(ctx, 707, "loyalty")
		assert.ErrorIs(t, err, subscription.ErrGrantNotFound)
	})

	t.Run("replace with empty set clears all grants", func(t *testing.T) {
		require.NoError(t, repo.ReplaceForBusiness(ctx, 707, nil))

		listed, err := repo.ListByBusinessID(ctx, 707)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

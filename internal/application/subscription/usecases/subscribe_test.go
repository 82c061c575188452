package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pricingusecases "github.com/servio-inc/servio/internal/application/pricing/usecases"
	"github.com/servio-inc/servio/internal/domain/billing"
	"github.com/servio-inc/servio/internal/domain/subscription"
	vo "github.com/servio-inc/servio/internal/domain/subscription/valueobjects"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/migrations"
	"github.com/servio-inc/servio/internal/infrastructure/persistence/models"
	"github.com/servio-inc/servio/internal/infrastructure/repository"
	"github.com/servio-inc/servio/internal/shared/db"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type fakeVerifier struct {
	err     error
	amounts []int64
}

func (f *fakeVerifier) Verify(ctx context.Context, reference string, expectedAmount int64) error {
	f.amounts = append(f.amounts, expectedAmount)
	return f.err
}

type fakeAccrual struct {
	calls int
}

func (f *fakeAccrual) Accrue(ctx context.Context, sub *subscription.Subscription, reference string, amount int64, durationDays int, paidAt time.Time) error {
	f.calls++
	return nil
}

type fakeStatusCache struct {
	invalidated []uint
}

func (f *fakeStatusCache) Get(ctx context.Context, businessID uint) (*StatusSnapshot, error) {
	return nil, nil
}

func (f *fakeStatusCache) Set(ctx context.Context, businessID uint, snapshot *StatusSnapshot) error {
	return nil
}

func (f *fakeStatusCache) Invalidate(ctx context.Context, businessID uint) error {
	f.invalidated = append(f.invalidated, businessID)
	return nil
}

type subscribeFixture struct {
	uc       *SubscribeUseCase
	verifier *fakeVerifier
	accrual  *fakeAccrual
	cache    *fakeStatusCache
	subRepo  subscription.Repository
	ledger   subscription.PaymentLedgerRepository
	grants   subscription.ModuleGrantRepository
}

func newSubscribeFixture(t *testing.T) *subscribeFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateAll(gdb))

	require.NoError(t, gdb.Create(&models.PlanModel{
		Tier:         "growth",
		Name:         "Growth",
		MonthlyPrice: 9900,
		CyclePrices:  []byte(`{"monthly":9900,"quarterly":26730,"annual":100980}`),
		UserLimit:    10,
		ProductLimit: 1000,
	}).Error)
	require.NoError(t, gdb.Create(&models.PlanModel{
		Tier:         "starter",
		Name:         "Starter",
		MonthlyPrice: 4900,
		CyclePrices:  []byte(`{"monthly":4900,"quarterly":13230,"annual":49980}`),
		UserLimit:    3,
		ProductLimit: 200,
	}).Error)
	require.NoError(t, gdb.Create(&models.ModuleModel{
		Code:         "inventory",
		Name:         "Inventory",
		MonthlyPrice: 2000,
		IsActive:     true,
	}).Error)

	log := logger.NewNoop()
	catalogRepo := repository.NewCatalogRepository(gdb, log)
	promoRepo := repository.NewPromoCodeRepository(gdb, log)
	subRepo := repository.NewSubscriptionRepository(gdb, log)
	ledgerRepo := repository.NewPaymentLedgerRepository(gdb, log)
	grantRepo := repository.NewModuleGrantRepository(gdb, log)

	verifier := &fakeVerifier{}
	accrual := &fakeAccrual{}
	cache := &fakeStatusCache{}

	uc := NewSubscribeUseCase(
		subRepo, ledgerRepo, grantRepo, promoRepo,
		pricingusecases.NewSelectionResolver(catalogRepo, promoRepo),
		billing.NewQuoteCalculator(),
		verifier, accrual,
		db.NewTransactionManager(gdb), cache, log)

	return &subscribeFixture{
		uc:       uc,
		verifier: verifier,
		accrual:  accrual,
		cache:    cache,
		subRepo:  subRepo,
		ledger:   ledgerRepo,
		grants:   grantRepo,
	}
}

func TestSubscribeUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("first payment activates and grants modules", func(t *testing.T) {
		fx := newSubscribeFixture(t)

		result, err := fx.uc.Execute(ctx, SubscribeCommand{
			BusinessID:  71,
			PlanTier:    "growth",
			Cycle:       "monthly",
			ModuleCodes: []string{"inventory"},
			Reference:   "txn_first",
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.False(t, result.Idempotent)
		assert.Equal(t, vo.StatusActive, result.Subscription.Status())
		assert.Equal(t, int64(11900), result.Quote.FinalTotal)
		require.Len(t, result.Grants, 1)
		assert.Equal(t, "inventory", result.Grants[0].ModuleCode())

		// Amount verified against the gateway is the quoted total.
		require.Len(t, fx.verifier.amounts, 1)
		assert.Equal(t, int64(11900), fx.verifier.amounts[0])

		assert.Equal(t, 1, fx.accrual.calls)
		assert.Equal(t, []uint{71}, fx.cache.invalidated)

		record, err := fx.ledger.GetByReference(ctx, "txn_first")
		require.NoError(t, err)
		assert.Equal(t, uint(71), record.BusinessID())
		assert.Equal(t, int64(11900), record.Amount())
	})

	t.Run("same reference replays idempotently", func(t *testing.T) {
		fx := newSubscribeFixture(t)

		cmd := SubscribeCommand{
			BusinessID: 72,
			PlanTier:   "growth",
			Cycle:      "monthly",
			Reference:  "txn_dup",
		}
		_, err := fx.uc.Execute(ctx, cmd)
		require.NoError(t, err)

		replay, err := fx.uc.Execute(ctx, cmd)
		require.NoError(t, err)
		assert.True(t, replay.Idempotent)
		assert.Equal(t, vo.StatusActive, replay.Subscription.Status())

		// The replay touches nothing: no second verification or accrual.
		assert.Len(t, fx.verifier.amounts, 1)
		assert.Equal(t, 1, fx.accrual.calls)
	})

	t.Run("reference consumed by another business conflicts", func(t *testing.T) {
		fx := newSubscribeFixture(t)

		_, err := fx.uc.Execute(ctx, SubscribeCommand{
			BusinessID: 73,
			PlanTier:   "growth",
			Cycle:      "monthly",
			Reference:  "txn_stolen",
		})
		require.NoError(t, err)

		_, err = fx.uc.Execute(ctx, SubscribeCommand{
			BusinessID: 74,
			PlanTier:   "growth",
			Cycle:      "monthly",
			Reference:  "txn_stolen",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("failed verification leaves no state behind", func(t *testing.T) {
		fx := newSubscribeFixture(t)
		fx.verifier.err = apperrors.NewPaymentVerificationError("payment not captured")

		_, err := fx.uc.Execute(ctx, SubscribeCommand{
			BusinessID: 75,
			PlanTier:   "growth",
			Cycle:      "monthly",
			Reference:  "txn_bogus",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsPaymentVerificationError(err))

		_, err = fx.ledger.GetByReference(ctx, "txn_bogus")
		assert.ErrorIs(t, err, subscription.ErrPaymentNotFound)
		assert.Equal(t, 0, fx.accrual.calls)
		assert.Empty(t, fx.cache.invalidated)
	})

	t.Run("starter tier rejects module selection", func(t *testing.T) {
		fx := newSubscribeFixture(t)

		_, err := fx.uc.Execute(ctx, SubscribeCommand{
			BusinessID:  76,
			PlanTier:    "starter",
			Cycle:       "monthly",
			ModuleCodes: []string{"inventory"},
			Reference:   "txn_starter",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})
}

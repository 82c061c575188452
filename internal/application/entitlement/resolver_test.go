package entitlement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cvo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
	"github.com/servio-inc/servio/internal/domain/subscription"
	"github.com/servio-inc/servio/internal/shared/logger"
)

type fakeSubscriptionRepo struct {
	subscription.Repository
	byBusiness map[uint]*subscription.Subscription
}

func (f *fakeSubscriptionRepo) GetCurrentByBusinessID(_ context.Context, businessID uint) (*subscription.Subscription, error) {
	if sub, ok := f.byBusiness[businessID]; ok {
		return sub, nil
	}
	return nil, subscription.ErrSubscriptionNotFound
}

type fakeGrantRepo struct {
	subscription.ModuleGrantRepository
	grants map[string]*subscription.ModuleGrant
}

func grantKey(businessID uint, code string) string {
	return fmt.Sprintf("%d/%s", businessID, code)
}

func (f *fakeGrantRepo) GetByBusinessAndModule(_ context.Context, businessID uint, moduleCode string) (*subscription.ModuleGrant, error) {
	if grant, ok := f.grants[grantKey(businessID, moduleCode)]; ok {
		return grant, nil
	}
	return nil, subscription.ErrGrantNotFound
}

func newTestResolver(t *testing.T, subs map[uint]*subscription.Subscription, grants map[string]*subscription.ModuleGrant) *Resolver {
	t.Helper()
	return NewResolver(
		&fakeSubscriptionRepo{byBusiness: subs},
		&fakeGrantRepo{grants: grants},
		3,
		logger.NewNoop(),
	)
}

func activeSubscription(t *testing.T, businessID uint, endDate time.Time) *subscription.Subscription {
	t.Helper()
	now := endDate.AddDate(0, 0, -30)
	sub, err := subscription.NewPendingSubscription("sub_test01", businessID, cvo.TierGrowth, nil, now)
	require.NoError(t, err)
	require.NoError(t, sub.ActivateWithPayment("txn-ent-1", 5000, cvo.BillingCycleMonthly, now))
	return sub
}

func activeGrant(t *testing.T, businessID uint, code string, expiry *time.Time) *subscription.ModuleGrant {
	t.Helper()
	now := time.Now().UTC().AddDate(0, 0, -10)
	grant, err := subscription.ReconstructModuleGrant(1, businessID, code, true, expiry, now, now)
	require.NoError(t, err)
	return grant
}

func TestHasModule_ActiveSubscriptionWithGrant(t *testing.T) {
	endDate := time.Now().UTC().AddDate(0, 0, 10)
	resolver := newTestResolver(t,
		map[uint]*subscription.Subscription{42: activeSubscription(t, 42, endDate)},
		map[string]*subscription.ModuleGrant{grantKey(42, "KITCHEN_DISPLAY"): activeGrant(t, 42, "KITCHEN_DISPLAY", nil)},
	)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", false)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasModule_NoSubscription(t *testing.T) {
	resolver := newTestResolver(t, nil, nil)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", false)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasModule_NoGrant(t *testing.T) {
	endDate := time.Now().UTC().AddDate(0, 0, 10)
	resolver := newTestResolver(t,
		map[uint]*subscription.Subscription{42: activeSubscription(t, 42, endDate)},
		nil,
	)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", false)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasModule_ExpiredGrant(t *testing.T) {
	endDate := time.Now().UTC().AddDate(0, 0, 10)
	past := time.Now().UTC().AddDate(0, 0, -1)
	resolver := newTestResolver(t,
		map[uint]*subscription.Subscription{42: activeSubscription(t, 42, endDate)},
		map[string]*subscription.ModuleGrant{grantKey(42, "KITCHEN_DISPLAY"): activeGrant(t, 42, "KITCHEN_DISPLAY", &past)},
	)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", false)

	require.NoError(t, err)
	assert.False(t, ok, "a past grant expiry denies entitlement immediately")
}

func TestHasModule_ExpiredSubscription(t *testing.T) {
	// ended long ago, grace window elapsed
	endDate := time.Now().UTC().AddDate(0, 0, -30)
	resolver := newTestResolver(t,
		map[uint]*subscription.Subscription{42: activeSubscription(t, 42, endDate)},
		map[string]*subscription.ModuleGrant{grantKey(42, "KITCHEN_DISPLAY"): activeGrant(t, 42, "KITCHEN_DISPLAY", nil)},
	)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", false)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasModule_OperatorBypass(t *testing.T) {
	resolver := newTestResolver(t, nil, nil)

	ok, err := resolver.HasModule(context.Background(), 42, "KITCHEN_DISPLAY", true)

	require.NoError(t, err)
	assert.True(t, ok, "operator bypass ignores subscription state entirely")
}

func TestHasModule_EmptyInput(t *testing.T) {
	resolver := newTestResolver(t, nil, nil)

	ok, err := resolver.HasModule(context.Background(), 0, "KITCHEN_DISPLAY", false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = resolver.HasModule(context.Background(), 42, "", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

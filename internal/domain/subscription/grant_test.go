package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleGrant_Entitled(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)
	past := now.AddDate(0, 0, -1)

	tests := []struct {
		name   string
		active bool
		expiry *time.Time
		want   bool
	}{
		{"active no expiry", true, nil, true},
		{"active future expiry", true, &future, true},
		{"active past expiry", true, &past, false},
		{"inactive", false, nil, false},
		{"inactive future expiry", false, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, err := ReconstructModuleGrant(1, 42, "KITCHEN_DISPLAY", tt.active, tt.expiry, now, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, grant.Entitled(now))
		})
	}
}

func TestModuleGrant_ExpiryBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	grant, err := ReconstructModuleGrant(1, 42, "KITCHEN_DISPLAY", true, &now, now, now)
	require.NoError(t, err)

	// entitled up to and including the expiry instant
	assert.True(t, grant.Entitled(now))
	assert.False(t, grant.Entitled(now.Add(time.Second)))
}

func TestModuleGrant_ToggleAndExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	grant, err := NewModuleGrant(42, "RECIPES", nil, now)
	require.NoError(t, err)
	require.True(t, grant.Entitled(now))

	grant.Deactivate(now)
	assert.False(t, grant.Entitled(now))

	grant.Activate(now)
	assert.True(t, grant.Entitled(now))

	past := now.AddDate(0, 0, -1)
	grant.SetExpiry(&past, now)
	assert.False(t, grant.Entitled(now))
}

func TestNewModuleGrant_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewModuleGrant(0, "RECIPES", nil, now)
	assert.Error(t, err)

	_, err = NewModuleGrant(42, "", nil, now)
	assert.Error(t, err)
}

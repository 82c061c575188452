package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

func TestSelectTier_StarterClearsModules(t *testing.T) {
	current := []string{"KITCHEN_DISPLAY", "RECIPES"}

	result := SelectTier(vo.TierStarter, current)

	assert.Empty(t, result)
	assert.Equal(t, []string{"KITCHEN_DISPLAY", "RECIPES"}, current, "input must not be mutated")
}

func TestSelectTier_GrowthKeepsModules(t *testing.T) {
	current := []string{"KITCHEN_DISPLAY"}

	result := SelectTier(vo.TierGrowth, current)

	assert.Equal(t, current, result)
}

func TestSelectTier_Idempotent(t *testing.T) {
	once := SelectTier(vo.TierStarter, []string{"KITCHEN_DISPLAY"})
	twice := SelectTier(vo.TierStarter, once)

	assert.Empty(t, twice)
}

func TestSelectTier_GrowthReturnsCopy(t *testing.T) {
	current := []string{"KITCHEN_DISPLAY"}

	result := SelectTier(vo.TierGrowth, current)
	result[0] = "MUTATED"

	assert.Equal(t, "KITCHEN_DISPLAY", current[0])
}

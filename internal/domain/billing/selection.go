package billing

import (
	vo "github.com/servio-inc/servio/internal/domain/catalog/valueobjects"
)

// SelectTier is the pure tier transition for a checkout selection.
// Switching to a tier that forbids add-ons clears the module selection;
// otherwise the current selection is preserved. The input slice is never
// mutated.
func SelectTier(tier vo.PlanTier, currentModules []string) []string {
	if !tier.AllowsModules() {
		return []string{}
	}
	return append([]string(nil), currentModules...)
}

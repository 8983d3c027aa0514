// Package selection enforces per-step selection cardinality. Everything here
// is pure and free of persistence so the same rules run during
// configuration-time preview and at order submission.
package selection

// SelectedCount counts distinct selected ids. Duplicates are not expected
// from well-behaved callers but are tolerated.
func SelectedCount(selectedIDs []string) int {
	seen := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// EffectiveMin folds the required flag into the configured minimum: a
// required step always needs at least one selection.
func EffectiveMin(minSelection int, isRequired bool) int {
	if minSelection > 0 {
		return minSelection
	}
	if isRequired {
		return 1
	}
	return 0
}

// IsInvalidConfig is true when the step can never be satisfied. Such a step
// must be shown as a configuration error, never as selectable.
func IsInvalidConfig(maxSelection, effectiveMin int) bool {
	return maxSelection < effectiveMin
}

func RemainingToMin(effectiveMin, selectedCount int) int {
	if effectiveMin <= 0 {
		return 0
	}
	if remaining := effectiveMin - selectedCount; remaining > 0 {
		return remaining
	}
	return 0
}

// CanSelectMore reports whether one more item may be added. Deselecting an
// already-selected item is always allowed.
func CanSelectMore(maxSelection, selectedCount int, isAlreadySelected bool) bool {
	if isAlreadySelected {
		return true
	}
	if maxSelection <= 0 {
		return false
	}
	return selectedCount < maxSelection
}

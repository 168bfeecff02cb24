// Package slots computes plan manager slot capacity for the manager
// grouping views.
//
// Two capacity rules exist in the product and both are kept on purpose:
// this package implements the historical fixed-capacity rule (6 slots for
// YouTube/Spotify with one reserved for the manager account, 3 otherwise)
// used by the overview grouping; the per-manager configurable SlotsTotal
// rule lives with the plan manager detail/list services. Do not unify them
// without a product decision.
package slots

import "strings"

type SlotCalculation struct {
	TotalSlots int `json:"total_slots"`
	EmptySlots int `json:"empty_slots"`
}

// Calculate reports total and remaining capacity for a platform given the
// current occupant count. Platform matching is case-insensitive. The result
// is clamped at zero, never negative.
func Calculate(platform string, occupantCount int) SlotCalculation {
	if isFamilyPlatform(platform) {
		// One slot is always reserved for the manager account itself.
		return SlotCalculation{
			TotalSlots: 6,
			EmptySlots: clamp(6 - (occupantCount + 1)),
		}
	}
	return SlotCalculation{
		TotalSlots: 3,
		EmptySlots: clamp(3 - occupantCount),
	}
}

// Describe returns the human label shown next to a manager card.
func Describe(platform string, isManaged bool) string {
	if isFamilyPlatform(platform) {
		if isManaged {
			return "6 slots (managed)"
		}
		return "5 slots (unmanaged)"
	}
	if isManaged {
		return "3 slots (managed)"
	}
	return "3 slots (unmanaged)"
}

func isFamilyPlatform(platform string) bool {
	return strings.EqualFold(platform, "youtube") || strings.EqualFold(platform, "spotify")
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

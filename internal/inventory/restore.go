package inventory

import (
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/item"
)

// FromSaveData reconstructs an inventory from its persisted map shape and
// rebuilds the count cache from scratch.
func FromSaveData(data map[string]any) (*StackInventory, error) {
	size := intValue(data["size"])
	inv := New(size)

	rawSlots, ok := data["slots"].([]map[string]any)
	if !ok {
		// JSON round-trips decode the list as []any
		if anySlots, isAny := data["slots"].([]any); isAny {
			for _, raw := range anySlots {
				if m, isMap := raw.(map[string]any); isMap {
					rawSlots = append(rawSlots, m)
				}
			}
		}
	}

	for _, raw := range rawSlots {
		idx := intValue(raw["slot"])
		stack, err := item.StackFromSaveData(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to restore slot %d: %w", idx, err)
		}
		if idx < 0 || idx >= inv.Size() {
			return nil, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, idx)
		}
		inv.slots[idx] = stack
	}

	inv.RebuildCounts()
	return inv, nil
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

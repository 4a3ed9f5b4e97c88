package inventory

import (
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
)

// DefaultSize is the standard character inventory size
const DefaultSize = 30

// StackInventory is fixed-slot stack storage. Each slot holds zero or one
// ItemStack; equipment occupies one slot per instance and never merges.
// Add and remove are all-or-nothing: a failed operation leaves the
// inventory untouched. Total quantity per item id is maintained
// incrementally so count queries are O(1).
type StackInventory struct {
	slots  []*domain.ItemStack
	counts map[string]int
}

// New creates an empty inventory with the given number of slots
func New(size int) *StackInventory {
	if size <= 0 {
		size = DefaultSize
	}
	return &StackInventory{
		slots:  make([]*domain.ItemStack, size),
		counts: make(map[string]int),
	}
}

// Size returns the number of slots
func (inv *StackInventory) Size() int { return len(inv.slots) }

// FreeSlots returns the number of empty slots
func (inv *StackInventory) FreeSlots() int {
	free := 0
	for _, s := range inv.slots {
		if s == nil {
			free++
		}
	}
	return free
}

// GetItemCount returns the total quantity held for an item id in O(1)
func (inv *StackInventory) GetItemCount(itemID string) int {
	return inv.counts[itemID]
}

// AddItem adds a stackable quantity, topping up compatible stacks in slot
// order before opening new stacks in empty slots. Returns false without
// mutating anything when total capacity cannot hold the full quantity.
func (inv *StackInventory) AddItem(itemID string, quantity, maxStack int, rarity domain.Rarity, crafted *domain.CraftedStats) bool {
	if quantity <= 0 || maxStack <= 0 {
		return false
	}

	probe := &domain.ItemStack{
		ItemID:       itemID,
		MaxStack:     maxStack,
		Rarity:       rarity,
		CraftedStats: crafted,
	}

	// Capacity pre-check keeps the operation all-or-nothing
	capacity := 0
	for _, s := range inv.slots {
		if s == nil {
			capacity += maxStack
		} else if s.CanStackWith(probe) {
			capacity += s.SpaceLeft()
		}
		if capacity >= quantity {
			break
		}
	}
	if capacity < quantity {
		return false
	}

	remaining := quantity
	for _, s := range inv.slots {
		if remaining == 0 {
			break
		}
		if s != nil && s.CanStackWith(probe) {
			take := min(remaining, s.SpaceLeft())
			s.Quantity += take
			remaining -= take
		}
	}
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		if inv.slots[i] == nil {
			take := min(remaining, maxStack)
			inv.slots[i] = &domain.ItemStack{
				ItemID:       itemID,
				Quantity:     take,
				MaxStack:     maxStack,
				Rarity:       rarity,
				CraftedStats: crafted,
			}
			remaining -= take
		}
	}
	if remaining != 0 {
		// Capacity pre-check guarantees this never happens
		panic(fmt.Sprintf("inventory: %d units of %s unplaced after capacity check", remaining, itemID))
	}

	inv.counts[itemID] += quantity
	return true
}

// AddEquipment places each instance into its own empty slot. Requires one
// empty slot per instance; returns false without mutating anything when
// there are not enough.
func (inv *StackInventory) AddEquipment(instances []*domain.EquipmentItem) bool {
	if len(instances) == 0 {
		return false
	}
	if inv.FreeSlots() < len(instances) {
		return false
	}

	next := 0
	for i := range inv.slots {
		if next == len(instances) {
			break
		}
		if inv.slots[i] == nil {
			eq := instances[next]
			inv.slots[i] = &domain.ItemStack{
				ItemID:       eq.ID,
				Quantity:     1,
				MaxStack:     domain.EquipmentStack,
				Equipment:    eq,
				Rarity:       eq.Rarity,
				CraftedStats: eq.CraftedStats,
			}
			inv.counts[eq.ID]++
			next++
		}
	}
	return true
}

// RemoveItem removes a quantity of an item, depleting stacks in slot order.
// Returns false without mutating anything when the total held quantity is
// less than requested.
func (inv *StackInventory) RemoveItem(itemID string, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if inv.counts[itemID] < quantity {
		return false
	}

	remaining := quantity
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		s := inv.slots[i]
		if s == nil || s.ItemID != itemID {
			continue
		}
		if s.Quantity <= remaining {
			remaining -= s.Quantity
			inv.slots[i] = nil
		} else {
			s.Quantity -= remaining
			remaining = 0
		}
	}

	inv.counts[itemID] -= quantity
	if inv.counts[itemID] == 0 {
		delete(inv.counts, itemID)
	}
	return true
}

// RemoveMatching removes a quantity drawn only from stacks that could merge
// with the given stack: same item id, same rarity, same crafted stats. Other
// variants of the id are left untouched. Returns false without mutating
// anything when the matching stacks hold less than requested.
func (inv *StackInventory) RemoveMatching(match *domain.ItemStack, quantity int) bool {
	if match == nil || quantity <= 0 {
		return false
	}

	held := 0
	for _, s := range inv.slots {
		if s != nil && s.CanStackWith(match) {
			held += s.Quantity
		}
	}
	if held < quantity {
		return false
	}

	remaining := quantity
	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		s := inv.slots[i]
		if s == nil || !s.CanStackWith(match) {
			continue
		}
		if s.Quantity <= remaining {
			remaining -= s.Quantity
			inv.slots[i] = nil
		} else {
			s.Quantity -= remaining
			remaining = 0
		}
	}

	inv.counts[match.ItemID] -= quantity
	if inv.counts[match.ItemID] == 0 {
		delete(inv.counts, match.ItemID)
	}
	return true
}

// RemoveEquipmentInstance removes and returns the equipment instance with
// the given instance id. This is the ownership-transfer path used by equip:
// the instance leaves its inventory slot entirely.
func (inv *StackInventory) RemoveEquipmentInstance(instanceID string) (*domain.EquipmentItem, bool) {
	for i, s := range inv.slots {
		if s == nil || s.Equipment == nil || s.Equipment.InstanceID != instanceID {
			continue
		}
		eq := s.Equipment
		inv.slots[i] = nil
		inv.counts[eq.ID]--
		if inv.counts[eq.ID] == 0 {
			delete(inv.counts, eq.ID)
		}
		return eq, true
	}
	return nil, false
}

// Slot returns the stack at index i, nil when empty
func (inv *StackInventory) Slot(i int) (*domain.ItemStack, error) {
	if i < 0 || i >= len(inv.slots) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, i)
	}
	return inv.slots[i], nil
}

// SetSlot writes a stack directly into a slot, bypassing add semantics but
// keeping the count cache consistent. Pass nil to clear the slot.
func (inv *StackInventory) SetSlot(i int, stack *domain.ItemStack) error {
	if i < 0 || i >= len(inv.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, i)
	}
	if stack != nil && !stack.IsEquipment() && stack.Quantity > stack.MaxStack {
		// Contract violation: callers must never construct an overfull stack
		panic(fmt.Sprintf("inventory: stack of %s exceeds max (%d > %d)", stack.ItemID, stack.Quantity, stack.MaxStack))
	}

	if old := inv.slots[i]; old != nil {
		inv.counts[old.ItemID] -= old.Quantity
		if inv.counts[old.ItemID] <= 0 {
			delete(inv.counts, old.ItemID)
		}
	}
	inv.slots[i] = stack
	if stack != nil {
		inv.counts[stack.ItemID] += stack.Quantity
	}
	return nil
}

// Swap exchanges the contents of two slots. Totals are unchanged, so the
// count cache needs no update.
func (inv *StackInventory) Swap(i, j int) error {
	if i < 0 || i >= len(inv.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, i)
	}
	if j < 0 || j >= len(inv.slots) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, j)
	}
	inv.slots[i], inv.slots[j] = inv.slots[j], inv.slots[i]
	return nil
}

// RebuildCounts recomputes the count cache from the slots. Used after bulk
// external mutation, e.g. loading persisted state.
func (inv *StackInventory) RebuildCounts() {
	counts := make(map[string]int)
	for _, s := range inv.slots {
		if s != nil {
			counts[s.ItemID] += s.Quantity
		}
	}
	inv.counts = counts
}

// ToSaveData serializes the inventory into the persisted map shape
func (inv *StackInventory) ToSaveData() map[string]any {
	slots := make([]map[string]any, 0)
	for i, s := range inv.slots {
		if s == nil {
			continue
		}
		entry := s.ToSaveData()
		entry["slot"] = i
		slots = append(slots, entry)
	}
	return map[string]any{
		"size":  len(inv.slots),
		"slots": slots,
	}
}

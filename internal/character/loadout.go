package character

import (
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
)

// Loadout is a character's equipped-slot map. An equipped instance lives
// only here; equip and unequip transfer ownership to and from the
// inventory rather than copying, so an item can never be in both places.
type Loadout struct {
	slots map[string]*domain.EquipmentItem
}

// NewLoadout creates an empty loadout
func NewLoadout() *Loadout {
	return &Loadout{slots: make(map[string]*domain.EquipmentItem)}
}

// Get returns the equipped item in a slot, nil when empty
func (l *Loadout) Get(slot string) *domain.EquipmentItem {
	return l.slots[slot]
}

// MainHand returns the equipped main-hand item, nil when empty
func (l *Loadout) MainHand() *domain.EquipmentItem { return l.slots[domain.SlotMainHand] }

// OffHand returns the equipped off-hand item, nil when empty
func (l *Loadout) OffHand() *domain.EquipmentItem { return l.slots[domain.SlotOffHand] }

// put takes ownership of an instance for a slot. The slot must be empty;
// callers resolve occupancy before transferring ownership in.
func (l *Loadout) put(slot string, eq *domain.EquipmentItem) {
	if l.slots[slot] != nil {
		panic(fmt.Sprintf("loadout: slot %s already occupied", slot))
	}
	l.slots[slot] = eq
}

// take removes and returns the instance in a slot, transferring ownership
// back to the caller
func (l *Loadout) take(slot string) *domain.EquipmentItem {
	eq := l.slots[slot]
	delete(l.slots, slot)
	return eq
}

// Each calls fn for every equipped item
func (l *Loadout) Each(fn func(slot string, eq *domain.EquipmentItem)) {
	for _, slot := range domain.EquipmentSlots {
		if eq := l.slots[slot]; eq != nil {
			fn(slot, eq)
		}
	}
}

// FindInstance returns the slot holding the given instance id
func (l *Loadout) FindInstance(instanceID string) (string, *domain.EquipmentItem) {
	for slot, eq := range l.slots {
		if eq.InstanceID == instanceID {
			return slot, eq
		}
	}
	return "", nil
}

// ToSaveData serializes the loadout into the persisted map shape, keyed by
// slot name
func (l *Loadout) ToSaveData() map[string]any {
	data := make(map[string]any, len(l.slots))
	for slot, eq := range l.slots {
		data[slot] = eq.ToSaveData()
	}
	return data
}

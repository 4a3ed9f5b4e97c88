package character

import (
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/inventory"
	"github.com/emberwake/emberwake/internal/item"
)

// ToSaveData serializes the character's full item state into the persisted
// map shape
func (c *Character) ToSaveData() map[string]any {
	return map[string]any{
		"character_id": c.ID,
		"inventory":    c.inventory.ToSaveData(),
		"loadout":      c.loadout.ToSaveData(),
		"buffs":        c.buffs.ToSaveData(),
	}
}

// LoadFromSaveData replaces the character's inventory, loadout, and buffs
// with persisted state. A malformed payload aborts the load and leaves the
// character unchanged.
func (c *Character) LoadFromSaveData(data map[string]any) error {
	invData, _ := data["inventory"].(map[string]any)
	if invData == nil {
		return fmt.Errorf("character %s: missing inventory save data", c.ID)
	}
	inv, err := inventory.FromSaveData(invData)
	if err != nil {
		return fmt.Errorf("character %s: %w", c.ID, err)
	}

	loadout := NewLoadout()
	if loadoutData, ok := data["loadout"].(map[string]any); ok {
		for slot, raw := range loadoutData {
			entry, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("character %s: loadout slot %s is not a map", c.ID, slot)
			}
			eq, err := item.EquipmentFromSaveData(entry)
			if err != nil {
				return fmt.Errorf("character %s: loadout slot %s: %w", c.ID, slot, err)
			}
			loadout.put(slot, eq)
		}
	}

	buffs := make([]*domain.ActiveBuff, 0)
	switch rawBuffs := data["buffs"].(type) {
	case []any:
		for i, raw := range rawBuffs {
			entry, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("character %s: buff %d is not a map", c.ID, i)
			}
			buffs = append(buffs, item.BuffFromSaveData(entry))
		}
	case []map[string]any:
		for _, entry := range rawBuffs {
			buffs = append(buffs, item.BuffFromSaveData(entry))
		}
	}

	c.inventory = inv
	c.loadout = loadout
	c.buffs.Replace(buffs)
	return nil
}

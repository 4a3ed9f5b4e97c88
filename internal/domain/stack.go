package domain

// ItemStack is the contents of one inventory slot: an item id, a quantity,
// and for equipment the unique instance payload. A stack holding equipment
// is always a single non-mergeable unit.
type ItemStack struct {
	ItemID       string
	Quantity     int
	MaxStack     int
	Equipment    *EquipmentItem
	Rarity       Rarity
	CraftedStats *CraftedStats
}

// IsEquipment reports whether this stack holds a unique equipment instance
func (s *ItemStack) IsEquipment() bool {
	return s.Equipment != nil
}

// SpaceLeft returns how many more units fit into this stack
func (s *ItemStack) SpaceLeft() int {
	if s.IsEquipment() {
		return 0
	}
	left := s.MaxStack - s.Quantity
	if left < 0 {
		return 0
	}
	return left
}

// CanStackWith reports whether other can merge into this stack. Equipment
// never merges; otherwise id, rarity and crafted modifiers must all match.
func (s *ItemStack) CanStackWith(other *ItemStack) bool {
	if other == nil {
		return false
	}
	if s.IsEquipment() || other.IsEquipment() {
		return false
	}
	if s.ItemID != other.ItemID {
		return false
	}
	if s.Rarity != other.Rarity {
		return false
	}
	return ModifiersEqual(s.CraftedStats, other.CraftedStats)
}

// ToSaveData serializes the stack into the persisted map shape
func (s *ItemStack) ToSaveData() map[string]any {
	data := map[string]any{
		SaveKeyItemID:   s.ItemID,
		"quantity":      s.Quantity,
		SaveKeyMaxStack: s.MaxStack,
		SaveKeyRarity:   string(s.Rarity),
	}
	if s.Equipment != nil {
		data["equipment"] = s.Equipment.ToSaveData()
	}
	if s.CraftedStats != nil {
		data["crafted_stats"] = s.CraftedStats.ToSaveData()
	}
	return data
}

package domain

// HandType describes how a piece of equipment occupies the weapon slots
type HandType string

const (
	HandNone        HandType = "none"
	HandOneHanded   HandType = "one_handed"
	HandTwoHanded   HandType = "two_handed"
	HandOffHandOnly HandType = "off_hand_only"
)

// EnchantEffect is the effect payload of an applied enchantment
type EnchantEffect struct {
	Type          string   `json:"type"`
	Value         float64  `json:"value"`
	ConflictsWith []string `json:"conflicts_with,omitempty"`
	// ApplicableTo is the legacy explicit allow-list of item types
	// (weapon/tool/armor/accessory). Newer content uses tags instead.
	ApplicableTo []string `json:"applicable_to,omitempty"`
}

// Enchantment is a single applied enchantment record
type Enchantment struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Effect EnchantEffect `json:"effect"`
	Tags   []string      `json:"tags,omitempty"`
}

// EquipmentItem is a unique, non-stackable piece of gear. Two instances
// created from the same catalog id never share state; InstanceID tells
// them apart.
type EquipmentItem struct {
	ID         string
	InstanceID string
	Name       string
	Tier       int
	Rarity     Rarity

	Slot     string
	HandType HandType
	// ItemType is the semantic type for enchanting (weapon/tool/armor/
	// accessory). Empty on older content; inferred from slot and damage then.
	ItemType string

	DamageMin int
	DamageMax int
	Defense   int

	DurabilityCurrent int
	DurabilityMax     int

	AttackSpeed float64
	Efficiency  float64
	Weight      float64
	Range       float64

	RequiredLevel int
	Requirements  map[string]int
	Bonuses       map[string]float64

	Enchantments []Enchantment
	CraftedStats *CraftedStats
	Soulbound    bool
}

func (e *EquipmentItem) ItemID() string         { return e.ID }
func (e *EquipmentItem) DisplayName() string    { return e.Name }
func (e *EquipmentItem) ItemTier() int          { return e.Tier }
func (e *EquipmentItem) ItemRarity() Rarity     { return e.Rarity }
func (e *EquipmentItem) ItemCategory() Category { return CategoryEquipment }

// StackLimit is always 1: equipment never merges into stacks
func (e *EquipmentItem) StackLimit() int { return EquipmentStack }

// IsWeaponSlot reports whether the equipment goes into a hand slot
func (e *EquipmentItem) IsWeaponSlot() bool {
	return e.Slot == SlotMainHand || e.Slot == SlotOffHand
}

// HasEnchantment reports whether the exact enchantment id is applied
func (e *EquipmentItem) HasEnchantment(id string) bool {
	for _, ench := range e.Enchantments {
		if ench.ID == id {
			return true
		}
	}
	return false
}

// ToSaveData serializes the equipment into the persisted map shape
func (e *EquipmentItem) ToSaveData() map[string]any {
	data := map[string]any{
		SaveKeyCategory:      string(CategoryEquipment),
		SaveKeyItemID:        e.ID,
		SaveKeyName:          e.Name,
		SaveKeyTier:          e.Tier,
		SaveKeyRarity:        string(e.Rarity),
		SaveKeyMaxStack:      EquipmentStack,
		"instance_id":        e.InstanceID,
		"slot":               e.Slot,
		"hand_type":          string(e.HandType),
		"damage_min":         e.DamageMin,
		"damage_max":         e.DamageMax,
		"defense":            e.Defense,
		"durability_current": e.DurabilityCurrent,
		"durability_max":     e.DurabilityMax,
		"attack_speed":       e.AttackSpeed,
		"efficiency":         e.Efficiency,
		"weight":             e.Weight,
		"range":              e.Range,
		"required_level":     e.RequiredLevel,
		"soulbound":          e.Soulbound,
	}
	if e.ItemType != "" {
		data["item_type"] = e.ItemType
	}
	if len(e.Requirements) > 0 {
		reqs := make(map[string]int, len(e.Requirements))
		for k, v := range e.Requirements {
			reqs[k] = v
		}
		data["requirements"] = reqs
	}
	if len(e.Bonuses) > 0 {
		bonuses := make(map[string]float64, len(e.Bonuses))
		for k, v := range e.Bonuses {
			bonuses[k] = v
		}
		data["bonuses"] = bonuses
	}
	if len(e.Enchantments) > 0 {
		enchants := make([]map[string]any, 0, len(e.Enchantments))
		for _, ench := range e.Enchantments {
			enchants = append(enchants, ench.ToSaveData())
		}
		data["enchantments"] = enchants
	}
	if e.CraftedStats != nil {
		data["crafted_stats"] = e.CraftedStats.ToSaveData()
	}
	return data
}

// ToSaveData serializes a single enchantment record
func (en Enchantment) ToSaveData() map[string]any {
	data := map[string]any{
		"id":           en.ID,
		"name":         en.Name,
		"effect_type":  en.Effect.Type,
		"effect_value": en.Effect.Value,
	}
	if len(en.Effect.ConflictsWith) > 0 {
		data["conflicts_with"] = append([]string(nil), en.Effect.ConflictsWith...)
	}
	if len(en.Effect.ApplicableTo) > 0 {
		data["applicable_to"] = append([]string(nil), en.Effect.ApplicableTo...)
	}
	if len(en.Tags) > 0 {
		data["tags"] = append([]string(nil), en.Tags...)
	}
	return data
}

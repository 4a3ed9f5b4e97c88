package item

import (
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
)

// FromSaveData reconstructs an item variant from its persisted map shape.
// Dispatch is driven purely by the "category" key; an unknown value is an
// error rather than a guessed variant.
func (f *Factory) FromSaveData(data map[string]any) (domain.Item, error) {
	category := asString(data[domain.SaveKeyCategory])
	switch domain.Category(category) {
	case domain.CategoryEquipment:
		return EquipmentFromSaveData(data)
	case domain.CategoryConsumable:
		return consumableFromSaveData(data), nil
	case domain.CategoryPlaceable:
		return placeableFromSaveData(data), nil
	case domain.CategoryMaterial, "":
		if category == "" {
			return nil, fmt.Errorf("%w: missing category key", domain.ErrUnknownCategory)
		}
		return materialFromSaveData(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
}

// StackFromSaveData reconstructs an inventory stack, including any embedded
// equipment instance and crafted stats
func StackFromSaveData(data map[string]any) (*domain.ItemStack, error) {
	stack := &domain.ItemStack{
		ItemID:   asString(data[domain.SaveKeyItemID]),
		Quantity: asInt(data["quantity"]),
		MaxStack: asInt(data[domain.SaveKeyMaxStack]),
		Rarity:   domain.Rarity(asString(data[domain.SaveKeyRarity])),
	}
	if eqData, ok := data["equipment"].(map[string]any); ok {
		eq, err := EquipmentFromSaveData(eqData)
		if err != nil {
			return nil, err
		}
		stack.Equipment = eq
	}
	if csData, ok := data["crafted_stats"].(map[string]any); ok {
		stack.CraftedStats = craftedStatsFromSaveData(csData)
	}
	return stack, nil
}

// BuffFromSaveData reconstructs an active buff from its persisted map shape
func BuffFromSaveData(data map[string]any) *domain.ActiveBuff {
	return &domain.ActiveBuff{
		ID:           asString(data["id"]),
		Name:         asString(data[domain.SaveKeyName]),
		EffectType:   domain.BuffEffectType(asString(data["effect_type"])),
		Category:     asString(data["buff_category"]),
		Bonus:        asFloat(data["bonus"]),
		Duration:     asFloat(data["duration"]),
		Remaining:    asFloat(data["remaining"]),
		ConsumeOnUse: asBool(data["consume_on_use"]),
	}
}

func materialFromSaveData(data map[string]any) *domain.MaterialItem {
	return &domain.MaterialItem{
		ID:           asString(data[domain.SaveKeyItemID]),
		Name:         asString(data[domain.SaveKeyName]),
		Tier:         asInt(data[domain.SaveKeyTier]),
		Rarity:       domain.Rarity(asString(data[domain.SaveKeyRarity])),
		MaxStack:     asInt(data[domain.SaveKeyMaxStack]),
		MaterialType: asString(data["material_type"]),
	}
}

func consumableFromSaveData(data map[string]any) *domain.ConsumableItem {
	return &domain.ConsumableItem{
		ID:           asString(data[domain.SaveKeyItemID]),
		Name:         asString(data[domain.SaveKeyName]),
		Tier:         asInt(data[domain.SaveKeyTier]),
		Rarity:       domain.Rarity(asString(data[domain.SaveKeyRarity])),
		MaxStack:     asInt(data[domain.SaveKeyMaxStack]),
		Subtype:      asString(data["subtype"]),
		EffectTags:   asStringSlice(data["effect_tags"]),
		EffectParams: asFloatMap(data["effect_params"]),
		Duration:     asFloat(data["duration"]),
		Cooldown:     asFloat(data["cooldown"]),
	}
}

func placeableFromSaveData(data map[string]any) *domain.PlaceableItem {
	return &domain.PlaceableItem{
		ID:                asString(data[domain.SaveKeyItemID]),
		Name:              asString(data[domain.SaveKeyName]),
		Tier:              asInt(data[domain.SaveKeyTier]),
		Rarity:            domain.Rarity(asString(data[domain.SaveKeyRarity])),
		MaxStack:          asInt(data[domain.SaveKeyMaxStack]),
		Subtype:           asString(data["subtype"]),
		StationDiscipline: asString(data["station_discipline"]),
		StationTier:       asInt(data["station_tier"]),
		EffectTags:        asStringSlice(data["effect_tags"]),
		EffectParams:      asFloatMap(data["effect_params"]),
		PlacementRadius:   asFloat(data["placement_radius"]),
	}
}

// EquipmentFromSaveData reconstructs a unique equipment instance. Durability
// is clamped into [0, max] so hand-edited or corrupted saves cannot produce
// an out-of-range instance.
func EquipmentFromSaveData(data map[string]any) (*domain.EquipmentItem, error) {
	eq := &domain.EquipmentItem{
		ID:                asString(data[domain.SaveKeyItemID]),
		InstanceID:        asString(data["instance_id"]),
		Name:              asString(data[domain.SaveKeyName]),
		Tier:              asInt(data[domain.SaveKeyTier]),
		Rarity:            domain.Rarity(asString(data[domain.SaveKeyRarity])),
		Slot:              asString(data["slot"]),
		HandType:          domain.HandType(asString(data["hand_type"])),
		ItemType:          asString(data["item_type"]),
		DamageMin:         asInt(data["damage_min"]),
		DamageMax:         asInt(data["damage_max"]),
		Defense:           asInt(data["defense"]),
		DurabilityCurrent: asInt(data["durability_current"]),
		DurabilityMax:     asInt(data["durability_max"]),
		AttackSpeed:       asFloat(data["attack_speed"]),
		Efficiency:        asFloat(data["efficiency"]),
		Weight:            asFloat(data["weight"]),
		Range:             asFloat(data["range"]),
		RequiredLevel:     asInt(data["required_level"]),
		Requirements:      asIntMap(data["requirements"]),
		Bonuses:           asFloatMap(data["bonuses"]),
		Soulbound:         asBool(data["soulbound"]),
	}
	if eq.HandType == "" {
		eq.HandType = domain.HandNone
	}
	if eq.DurabilityCurrent < 0 {
		eq.DurabilityCurrent = 0
	}
	if eq.DurabilityCurrent > eq.DurabilityMax {
		eq.DurabilityCurrent = eq.DurabilityMax
	}

	if rawList, ok := data["enchantments"].([]map[string]any); ok {
		for _, raw := range rawList {
			eq.Enchantments = append(eq.Enchantments, enchantmentFromSaveData(raw))
		}
	} else if rawList, ok := data["enchantments"].([]any); ok {
		// JSON round-trips decode the list as []any
		for _, item := range rawList {
			if raw, ok := item.(map[string]any); ok {
				eq.Enchantments = append(eq.Enchantments, enchantmentFromSaveData(raw))
			}
		}
	}

	if csData, ok := data["crafted_stats"].(map[string]any); ok {
		eq.CraftedStats = craftedStatsFromSaveData(csData)
	}

	return eq, nil
}

func enchantmentFromSaveData(data map[string]any) domain.Enchantment {
	return domain.Enchantment{
		ID:   asString(data["id"]),
		Name: asString(data["name"]),
		Effect: domain.EnchantEffect{
			Type:          asString(data["effect_type"]),
			Value:         asFloat(data["effect_value"]),
			ConflictsWith: asStringSlice(data["conflicts_with"]),
			ApplicableTo:  asStringSlice(data["applicable_to"]),
		},
		Tags: asStringSlice(data["tags"]),
	}
}

func craftedStatsFromSaveData(data map[string]any) *domain.CraftedStats {
	return &domain.CraftedStats{
		QualityScore:   asFloat(data["quality_score"]),
		QualityTier:    domain.QualityTier(asString(data["quality_tier"])),
		RarityOverride: domain.Rarity(asString(data["rarity_override"])),
		Modifiers:      asFloatMap(data["modifiers"]),
		Discipline:     asString(data["discipline"]),
		FirstTry:       asBool(data["first_try"]),
		Perfect:        asBool(data["perfect"]),
	}
}

// Save data values arrive either as native Go types (in-process maps) or as
// the JSON decoder's float64/[]any shapes. The helpers below accept both.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
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

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asStringSlice(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func asFloatMap(v any) map[string]float64 {
	switch m := v.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(map[string]float64, len(m))
		for k, val := range m {
			out[k] = asFloat(val)
		}
		return out
	}
	return nil
}

func asIntMap(v any) map[string]int {
	switch m := v.(type) {
	case map[string]int:
		out := make(map[string]int, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	case map[string]any:
		out := make(map[string]int, len(m))
		for k, val := range m {
			out[k] = asInt(val)
		}
		return out
	}
	return nil
}

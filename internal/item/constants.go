package item

// Crafted stat modifier keys. CreateCrafted reads these out of the
// CraftedStats modifier map and applies them additively to the base stats.
const (
	ModifierDamageMin     = "damage_min"
	ModifierDamageMax     = "damage_max"
	ModifierDefense       = "defense"
	ModifierDurabilityMax = "durability_max"
	ModifierEfficiency    = "efficiency"

	// ModifierDamageMultiplier is not applied at creation time; it is folded
	// into the damage computation alongside enchantment multipliers.
	ModifierDamageMultiplier  = "damage_multiplier"
	ModifierDefenseMultiplier = "defense_multiplier"
)

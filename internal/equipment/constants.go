package equipment

// Semantic item types used for enchant applicability
const (
	TypeWeapon    = "weapon"
	TypeTool      = "tool"
	TypeArmor     = "armor"
	TypeAccessory = "accessory"
)

// Effect types with special handling
const (
	EffectDamageMultiplier  = "damage_multiplier"
	EffectDefenseMultiplier = "defense_multiplier"
	EffectSoulbound         = "soulbound"
)

// Enchantment tag that allows application to any item type
const TagAnyItem = "any"

// RepairUrgency classifies how badly a piece of equipment needs repair
type RepairUrgency string

const (
	UrgencyNone     RepairUrgency = "none"
	UrgencyLow      RepairUrgency = "low"
	UrgencyMedium   RepairUrgency = "medium"
	UrgencyHigh     RepairUrgency = "high"
	UrgencyCritical RepairUrgency = "critical"
)

// Durability percent thresholds for repair urgency
const (
	urgencyLowThreshold    = 0.5
	urgencyMediumThreshold = 0.2
)

// Bonus key on a main-hand weapon that permits pairing an off-hand weapon
const BonusDualWield = "dual_wield"

// Effectiveness curve bounds
const (
	effectivenessFloor    = 0.5
	effectivenessFullFrom = 0.5
)

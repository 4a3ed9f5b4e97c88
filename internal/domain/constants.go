package domain

// Tier bounds for all item content
const (
	MinTier = 1
	MaxTier = 4
)

// Default stack limits per variant
const (
	DefaultMaterialStack   = 99
	DefaultConsumableStack = 20
	DefaultPlaceableStack  = 10
	EquipmentStack         = 1
)

// Save data keys shared across variants
const (
	SaveKeyCategory = "category"
	SaveKeyItemID   = "item_id"
	SaveKeyName     = "name"
	SaveKeyTier     = "tier"
	SaveKeyRarity   = "rarity"
	SaveKeyMaxStack = "max_stack"
)

// Equipment slot identifiers (9 fixed slots)
const (
	SlotMainHand   = "main_hand"
	SlotOffHand    = "off_hand"
	SlotHelmet     = "helmet"
	SlotChestplate = "chestplate"
	SlotLeggings   = "leggings"
	SlotBoots      = "boots"
	SlotGauntlets  = "gauntlets"
	SlotAccessory1 = "accessory_1"
	SlotAccessory2 = "accessory_2"
)

// EquipmentSlots lists every equippable slot in canonical order
var EquipmentSlots = []string{
	SlotMainHand,
	SlotOffHand,
	SlotHelmet,
	SlotChestplate,
	SlotLeggings,
	SlotBoots,
	SlotGauntlets,
	SlotAccessory1,
	SlotAccessory2,
}

// ArmorSlots are the slots treated as armor for enchant applicability
var ArmorSlots = map[string]bool{
	SlotHelmet:     true,
	SlotChestplate: true,
	SlotLeggings:   true,
	SlotBoots:      true,
	SlotGauntlets:  true,
}

package domain

// Category discriminates the four item variants. It is also the value stored
// under the "category" save data key, so renaming a value is a save-breaking
// change.
type Category string

const (
	CategoryMaterial   Category = "material"
	CategoryEquipment  Category = "equipment"
	CategoryConsumable Category = "consumable"
	CategoryPlaceable  Category = "placeable"
)

// Rarity represents the visual rarity band of an item
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

// ValidRarity reports whether r is one of the known rarity bands
func ValidRarity(r Rarity) bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityArtifact:
		return true
	}
	return false
}

// Item is the shared capability surface of the four item variants.
// Only the item factory constructs implementations; everything else treats
// an Item as read-only except through the component that owns its invariant.
type Item interface {
	ItemID() string
	DisplayName() string
	ItemTier() int
	ItemRarity() Rarity
	StackLimit() int
	ItemCategory() Category
	ToSaveData() map[string]any
}

// MaterialItem is a raw crafting ingredient (ore, wood, monster drops, ...)
type MaterialItem struct {
	ID           string
	Name         string
	Tier         int
	Rarity       Rarity
	MaxStack     int
	MaterialType string
}

func (m *MaterialItem) ItemID() string         { return m.ID }
func (m *MaterialItem) DisplayName() string    { return m.Name }
func (m *MaterialItem) ItemTier() int          { return m.Tier }
func (m *MaterialItem) ItemRarity() Rarity     { return m.Rarity }
func (m *MaterialItem) ItemCategory() Category { return CategoryMaterial }

// StackLimit returns the max stack size, defaulting when unset
func (m *MaterialItem) StackLimit() int {
	if m.MaxStack <= 0 {
		return DefaultMaterialStack
	}
	return m.MaxStack
}

// ToSaveData serializes the material into the persisted map shape
func (m *MaterialItem) ToSaveData() map[string]any {
	return map[string]any{
		SaveKeyCategory: string(CategoryMaterial),
		SaveKeyItemID:   m.ID,
		SaveKeyName:     m.Name,
		SaveKeyTier:     m.Tier,
		SaveKeyRarity:   string(m.Rarity),
		SaveKeyMaxStack: m.StackLimit(),
		"material_type": m.MaterialType,
	}
}

// ConsumableItem is a single-use item (potion, food, scroll)
type ConsumableItem struct {
	ID           string
	Name         string
	Tier         int
	Rarity       Rarity
	MaxStack     int
	Subtype      string
	EffectTags   []string
	EffectParams map[string]float64
	Duration     float64
	Cooldown     float64
}

func (c *ConsumableItem) ItemID() string         { return c.ID }
func (c *ConsumableItem) DisplayName() string    { return c.Name }
func (c *ConsumableItem) ItemTier() int          { return c.Tier }
func (c *ConsumableItem) ItemRarity() Rarity     { return c.Rarity }
func (c *ConsumableItem) ItemCategory() Category { return CategoryConsumable }

func (c *ConsumableItem) StackLimit() int {
	if c.MaxStack <= 0 {
		return DefaultConsumableStack
	}
	return c.MaxStack
}

// HasEffect reports whether the consumable carries the given effect tag
func (c *ConsumableItem) HasEffect(tag string) bool {
	for _, t := range c.EffectTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (c *ConsumableItem) ToSaveData() map[string]any {
	data := map[string]any{
		SaveKeyCategory: string(CategoryConsumable),
		SaveKeyItemID:   c.ID,
		SaveKeyName:     c.Name,
		SaveKeyTier:     c.Tier,
		SaveKeyRarity:   string(c.Rarity),
		SaveKeyMaxStack: c.StackLimit(),
		"subtype":       c.Subtype,
		"duration":      c.Duration,
		"cooldown":      c.Cooldown,
	}
	if len(c.EffectTags) > 0 {
		data["effect_tags"] = append([]string(nil), c.EffectTags...)
	}
	if len(c.EffectParams) > 0 {
		params := make(map[string]float64, len(c.EffectParams))
		for k, v := range c.EffectParams {
			params[k] = v
		}
		data["effect_params"] = params
	}
	return data
}

// PlaceableItem is a world-placeable object (crafting station, turret, trap, ...)
type PlaceableItem struct {
	ID                string
	Name              string
	Tier              int
	Rarity            Rarity
	MaxStack          int
	Subtype           string
	StationDiscipline string
	StationTier       int
	EffectTags        []string
	EffectParams      map[string]float64
	PlacementRadius   float64
}

func (p *PlaceableItem) ItemID() string         { return p.ID }
func (p *PlaceableItem) DisplayName() string    { return p.Name }
func (p *PlaceableItem) ItemTier() int          { return p.Tier }
func (p *PlaceableItem) ItemRarity() Rarity     { return p.Rarity }
func (p *PlaceableItem) ItemCategory() Category { return CategoryPlaceable }

func (p *PlaceableItem) StackLimit() int {
	if p.MaxStack <= 0 {
		return DefaultPlaceableStack
	}
	return p.MaxStack
}

// IsCraftingStation reports whether this placeable acts as a crafting station
func (p *PlaceableItem) IsCraftingStation() bool {
	return p.Subtype == PlaceableStation && p.StationDiscipline != ""
}

func (p *PlaceableItem) ToSaveData() map[string]any {
	data := map[string]any{
		SaveKeyCategory:    string(CategoryPlaceable),
		SaveKeyItemID:      p.ID,
		SaveKeyName:        p.Name,
		SaveKeyTier:        p.Tier,
		SaveKeyRarity:      string(p.Rarity),
		SaveKeyMaxStack:    p.StackLimit(),
		"subtype":          p.Subtype,
		"placement_radius": p.PlacementRadius,
	}
	if p.StationDiscipline != "" {
		data["station_discipline"] = p.StationDiscipline
		data["station_tier"] = p.StationTier
	}
	if len(p.EffectTags) > 0 {
		data["effect_tags"] = append([]string(nil), p.EffectTags...)
	}
	if len(p.EffectParams) > 0 {
		params := make(map[string]float64, len(p.EffectParams))
		for k, v := range p.EffectParams {
			params[k] = v
		}
		data["effect_params"] = params
	}
	return data
}

// Placeable subtypes
const (
	PlaceableStation = "station"
	PlaceableTurret  = "turret"
	PlaceableTrap    = "trap"
	PlaceableBomb    = "bomb"
	PlaceableUtility = "utility"
)

// Consumable subtypes
const (
	ConsumablePotion = "potion"
	ConsumableFood   = "food"
	ConsumableScroll = "scroll"
)

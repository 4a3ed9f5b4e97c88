package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/emberwake/emberwake/internal/domain"
)

// StaticDef is the immutable catalog definition an item id resolves to.
// It carries enough fields to classify and populate any of the four item
// variants; unused fields stay at their zero value.
type StaticDef struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Tier     int    `json:"tier" validate:"min=1,max=4"`
	Rarity   string `json:"rarity" validate:"omitempty,oneof=common uncommon rare epic legendary artifact"`
	MaxStack int    `json:"max_stack,omitempty" validate:"omitempty,min=1"`

	// Classification metadata. Placeable wins, then ItemType/ItemSubtype;
	// an unflagged definition is a material.
	Placeable   bool   `json:"placeable,omitempty"`
	ItemType    string `json:"item_type,omitempty"`
	ItemSubtype string `json:"item_subtype,omitempty"`

	MaterialType string `json:"material_type,omitempty"`

	// Equipment fields
	Slot          string             `json:"slot,omitempty" validate:"omitempty,oneof=main_hand off_hand helmet chestplate leggings boots gauntlets accessory_1 accessory_2"`
	HandType      string             `json:"hand_type,omitempty" validate:"omitempty,oneof=none one_handed two_handed off_hand_only"`
	DamageMin     int                `json:"damage_min,omitempty"`
	DamageMax     int                `json:"damage_max,omitempty" validate:"gtefield=DamageMin"`
	Defense       int                `json:"defense,omitempty"`
	DurabilityMax int                `json:"durability_max,omitempty"`
	AttackSpeed   float64            `json:"attack_speed,omitempty"`
	Efficiency    float64            `json:"efficiency,omitempty"`
	Weight        float64            `json:"weight,omitempty"`
	Range         float64            `json:"range,omitempty"`
	RequiredLevel int                `json:"required_level,omitempty"`
	Requirements  map[string]int     `json:"requirements,omitempty"`
	Bonuses       map[string]float64 `json:"bonuses,omitempty"`
	Soulbound     bool               `json:"soulbound,omitempty"`

	// Consumable / placeable fields
	EffectTags        []string           `json:"effect_tags,omitempty"`
	EffectParams      map[string]float64 `json:"effect_params,omitempty"`
	Duration          float64            `json:"duration,omitempty"`
	Cooldown          float64            `json:"cooldown,omitempty"`
	StationDiscipline string             `json:"station_discipline,omitempty"`
	StationTier       int                `json:"station_tier,omitempty"`
	PlacementRadius   float64            `json:"placement_radius,omitempty"`

	Tags []string `json:"tags,omitempty"`
}

// Category classifies the definition into one of the four item variants
func (d *StaticDef) Category() domain.Category {
	switch {
	case d.Placeable:
		return domain.CategoryPlaceable
	case d.IsEquipment():
		return domain.CategoryEquipment
	case d.IsConsumable():
		return domain.CategoryConsumable
	default:
		return domain.CategoryMaterial
	}
}

// IsEquipment reports whether the definition describes gear
func (d *StaticDef) IsEquipment() bool {
	switch d.ItemType {
	case "weapon", "tool", "armor", "accessory":
		return true
	}
	return d.Slot != ""
}

// IsConsumable reports whether the definition describes a consumable
func (d *StaticDef) IsConsumable() bool {
	if d.ItemType != "consumable" {
		return false
	}
	return true
}

// StackLimit returns the effective per-stack limit for this definition,
// applying the variant default when max_stack is unset
func (d *StaticDef) StackLimit() int {
	switch d.Category() {
	case domain.CategoryEquipment:
		return domain.EquipmentStack
	case domain.CategoryConsumable:
		if d.MaxStack > 0 {
			return d.MaxStack
		}
		return domain.DefaultConsumableStack
	case domain.CategoryPlaceable:
		if d.MaxStack > 0 {
			return d.MaxStack
		}
		return domain.DefaultPlaceableStack
	default:
		if d.MaxStack > 0 {
			return d.MaxStack
		}
		return domain.DefaultMaterialStack
	}
}

// ItemRarity returns the rarity, defaulting to common when unset
func (d *StaticDef) ItemRarity() domain.Rarity {
	if d.Rarity == "" {
		return domain.RarityCommon
	}
	return domain.Rarity(d.Rarity)
}

// Catalog resolves an item id to its static definition
type Catalog interface {
	GetDefinition(ctx context.Context, id string) (*StaticDef, error)
}

// Store is an in-memory catalog backed by a loaded item configuration
type Store struct {
	mu   sync.RWMutex
	defs map[string]*StaticDef
}

// NewStore builds a catalog store from loaded definitions
func NewStore(config *Config) *Store {
	defs := make(map[string]*StaticDef, len(config.Items))
	for i := range config.Items {
		def := config.Items[i]
		defs[def.ID] = &def
	}
	return &Store{defs: defs}
}

// GetDefinition resolves an item id against the store
func (s *Store) GetDefinition(_ context.Context, id string) (*StaticDef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}
	return def, nil
}

// Replace swaps the full definition set, used on config reload
func (s *Store) Replace(config *Config) {
	defs := make(map[string]*StaticDef, len(config.Items))
	for i := range config.Items {
		def := config.Items[i]
		defs[def.ID] = &def
	}

	s.mu.Lock()
	s.defs = defs
	s.mu.Unlock()
}

// Len returns the number of loaded definitions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.defs)
}

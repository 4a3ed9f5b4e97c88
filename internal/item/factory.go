package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/event"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/metrics"
)

// Factory is the single construction surface for item variants. Every item
// in the system comes out of one of its three paths: catalog lookup, save
// data reconstruction, or crafted reward construction. Construction is
// all-or-nothing; a failed path returns nil and an error, never a
// half-built item.
type Factory struct {
	catalog catalog.Catalog
	bus     event.Bus
}

// NewFactory creates a new Factory backed by the given catalog. A nil bus
// disables creation events.
func NewFactory(cat catalog.Catalog, bus event.Bus) *Factory {
	return &Factory{catalog: cat, bus: bus}
}

// CreateFromID resolves an item id against the catalog and constructs the
// matching variant. Equipment ids always yield a fresh, independent
// instance so two stacks of "the same" weapon never alias state.
func (f *Factory) CreateFromID(ctx context.Context, id string) (domain.Item, error) {
	def, err := f.catalog.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}

	var built domain.Item
	switch def.Category() {
	case domain.CategoryEquipment:
		built = f.buildEquipment(def)
	case domain.CategoryConsumable:
		built = f.buildConsumable(def)
	case domain.CategoryPlaceable:
		built = f.buildPlaceable(def)
	default:
		built = f.buildMaterial(def)
	}

	metrics.ItemsCreated.WithLabelValues(string(built.ItemCategory())).Inc()
	f.publishCreated(ctx, id, built.ItemCategory(), false)
	return built, nil
}

// CreateCrafted builds an equipment instance from the catalog definition and
// applies crafting reward stats as additive bonuses. Current durability is
// reset to the (possibly raised) max, and the crafted quality's rarity label
// overrides the base rarity when provided.
func (f *Factory) CreateCrafted(ctx context.Context, id string, stats *domain.CraftedStats) (*domain.EquipmentItem, error) {
	def, err := f.catalog.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	if def.Category() != domain.CategoryEquipment {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotEquipment, id)
	}

	eq := f.buildEquipment(def)
	if stats != nil {
		eq.DamageMin += int(stats.Modifier(ModifierDamageMin))
		eq.DamageMax += int(stats.Modifier(ModifierDamageMax))
		eq.Defense += int(stats.Modifier(ModifierDefense))
		eq.DurabilityMax += int(stats.Modifier(ModifierDurabilityMax))
		eq.DurabilityCurrent = eq.DurabilityMax
		eq.Efficiency += stats.Modifier(ModifierEfficiency)
		if stats.RarityOverride != "" {
			eq.Rarity = stats.RarityOverride
		}
		eq.CraftedStats = stats
	}

	logger.FromContext(ctx).Debug("Crafted equipment created",
		"item_id", id, "quality_tier", qualityTier(stats), "instance_id", eq.InstanceID)
	metrics.ItemsCreated.WithLabelValues(string(domain.CategoryEquipment)).Inc()
	metrics.ItemsCrafted.WithLabelValues(qualityTier(stats)).Inc()
	f.publishCreated(ctx, id, domain.CategoryEquipment, true)
	return eq, nil
}

func (f *Factory) publishCreated(ctx context.Context, id string, category domain.Category, crafted bool) {
	if f.bus == nil {
		return
	}
	ev := event.New(event.ItemCreated, event.ItemCreatedPayloadV1{
		ItemID:   id,
		Category: string(category),
		Crafted:  crafted,
	})
	if err := f.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", ev.Type, "error", err)
	}
}

func qualityTier(stats *domain.CraftedStats) string {
	if stats == nil {
		return string(domain.QualityNormal)
	}
	return string(stats.QualityTier)
}

func (f *Factory) buildMaterial(def *catalog.StaticDef) *domain.MaterialItem {
	return &domain.MaterialItem{
		ID:           def.ID,
		Name:         def.Name,
		Tier:         def.Tier,
		Rarity:       def.ItemRarity(),
		MaxStack:     def.StackLimit(),
		MaterialType: def.MaterialType,
	}
}

func (f *Factory) buildConsumable(def *catalog.StaticDef) *domain.ConsumableItem {
	return &domain.ConsumableItem{
		ID:           def.ID,
		Name:         def.Name,
		Tier:         def.Tier,
		Rarity:       def.ItemRarity(),
		MaxStack:     def.StackLimit(),
		Subtype:      def.ItemSubtype,
		EffectTags:   append([]string(nil), def.EffectTags...),
		EffectParams: copyFloatMap(def.EffectParams),
		Duration:     def.Duration,
		Cooldown:     def.Cooldown,
	}
}

func (f *Factory) buildPlaceable(def *catalog.StaticDef) *domain.PlaceableItem {
	return &domain.PlaceableItem{
		ID:                def.ID,
		Name:              def.Name,
		Tier:              def.Tier,
		Rarity:            def.ItemRarity(),
		MaxStack:          def.StackLimit(),
		Subtype:           def.ItemSubtype,
		StationDiscipline: def.StationDiscipline,
		StationTier:       def.StationTier,
		EffectTags:        append([]string(nil), def.EffectTags...),
		EffectParams:      copyFloatMap(def.EffectParams),
		PlacementRadius:   def.PlacementRadius,
	}
}

// buildEquipment copies every mutable field so instances never share state
// with the definition or with each other.
func (f *Factory) buildEquipment(def *catalog.StaticDef) *domain.EquipmentItem {
	handType := domain.HandType(def.HandType)
	if handType == "" {
		handType = domain.HandNone
	}
	return &domain.EquipmentItem{
		ID:                def.ID,
		InstanceID:        uuid.NewString(),
		Name:              def.Name,
		Tier:              def.Tier,
		Rarity:            def.ItemRarity(),
		Slot:              def.Slot,
		HandType:          handType,
		ItemType:          def.ItemType,
		DamageMin:         def.DamageMin,
		DamageMax:         def.DamageMax,
		Defense:           def.Defense,
		DurabilityCurrent: def.DurabilityMax,
		DurabilityMax:     def.DurabilityMax,
		AttackSpeed:       def.AttackSpeed,
		Efficiency:        def.Efficiency,
		Weight:            def.Weight,
		Range:             def.Range,
		RequiredLevel:     def.RequiredLevel,
		Requirements:      copyIntMap(def.Requirements),
		Bonuses:           copyFloatMap(def.Bonuses),
		Soulbound:         def.Soulbound,
	}
}

func copyIntMap(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package character

import (
	"context"
	"fmt"

	"github.com/emberwake/emberwake/internal/buff"
	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/equipment"
	"github.com/emberwake/emberwake/internal/event"
	"github.com/emberwake/emberwake/internal/inventory"
	"github.com/emberwake/emberwake/internal/item"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/metrics"
)

// Character owns one character's item state: the stack inventory, the
// equipped-slot loadout, and the active buffs. All operations run on the
// character's single update thread; there is no shared mutable state
// across characters.
type Character struct {
	ID string

	factory *item.Factory
	catalog catalog.Catalog
	stats   equipment.StatsProvider
	bus     event.Bus

	inventory *inventory.StackInventory
	loadout   *Loadout
	buffs     *buff.Aggregator
}

// New creates a character with an empty inventory and loadout. bus may be
// nil when no observer cares about item events (tests, tools).
func New(id string, factory *item.Factory, cat catalog.Catalog, stats equipment.StatsProvider, bus event.Bus) *Character {
	c := &Character{
		ID:        id,
		factory:   factory,
		catalog:   cat,
		stats:     stats,
		bus:       bus,
		inventory: inventory.New(inventory.DefaultSize),
		loadout:   NewLoadout(),
	}
	c.buffs = buff.New(c.onBuffEnded)
	return c
}

// Inventory exposes the character's stack inventory
func (c *Character) Inventory() *inventory.StackInventory { return c.inventory }

// Loadout exposes the character's equipped slots
func (c *Character) Loadout() *Loadout { return c.loadout }

// Buffs exposes the character's buff aggregator
func (c *Character) Buffs() *buff.Aggregator { return c.buffs }

// AddItemByID creates qty units of the catalog item and adds them to the
// inventory. Equipment ids yield one fresh instance per unit, each in its
// own slot. All-or-nothing: on capacity failure nothing is added.
func (c *Character) AddItemByID(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}

	def, err := c.catalog.GetDefinition(ctx, id)
	if err != nil {
		return err
	}

	if def.Category() == domain.CategoryEquipment {
		instances := make([]*domain.EquipmentItem, 0, qty)
		for range qty {
			created, err := c.factory.CreateFromID(ctx, id)
			if err != nil {
				return err
			}
			instances = append(instances, created.(*domain.EquipmentItem))
		}
		if !c.inventory.AddEquipment(instances) {
			return fmt.Errorf("%w: need %d empty slots", domain.ErrInventoryFull, qty)
		}
		return nil
	}

	created, err := c.factory.CreateFromID(ctx, id)
	if err != nil {
		return err
	}
	if !c.inventory.AddItem(id, qty, created.StackLimit(), created.ItemRarity(), nil) {
		return fmt.Errorf("%w: cannot hold %d %s", domain.ErrInventoryFull, qty, id)
	}
	return nil
}

// AddCrafted creates a crafted equipment instance and places it in the
// inventory
func (c *Character) AddCrafted(ctx context.Context, id string, stats *domain.CraftedStats) (*domain.EquipmentItem, error) {
	eq, err := c.factory.CreateCrafted(ctx, id, stats)
	if err != nil {
		return nil, err
	}
	if !c.inventory.AddEquipment([]*domain.EquipmentItem{eq}) {
		return nil, fmt.Errorf("%w: no empty slot for crafted %s", domain.ErrInventoryFull, id)
	}
	return eq, nil
}

// RemoveItem removes qty units of an item id, all-or-nothing
func (c *Character) RemoveItem(_ context.Context, id string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	if !c.inventory.RemoveItem(id, qty) {
		return fmt.Errorf("%w: have %d of %s, want %d",
			domain.ErrInsufficientQuantity, c.inventory.GetItemCount(id), id, qty)
	}
	return nil
}

// Equip moves the inventory instance with the given instance id into its
// equipment slot. Rule violations (requirements, hand conflicts, occupied
// slot with a full inventory) return ok=false plus a player-facing reason;
// only a missing instance is an error.
func (c *Character) Equip(ctx context.Context, instanceID string) (bool, string, error) {
	eq := c.findInventoryInstance(instanceID)
	if eq == nil {
		return false, "", fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
	}

	model := equipment.NewModel(eq, c.buffs)
	if ok, reason := model.CanEquip(c.stats); !ok {
		return false, reason, nil
	}
	if ok, reason := equipment.CanOccupyHands(eq, eq.Slot, c.loadout.MainHand(), c.loadout.OffHand()); !ok {
		return false, reason, nil
	}

	// The occupied-slot swap needs the outgoing item back in the inventory
	// before the incoming one leaves it, so a full inventory fails cleanly.
	if current := c.loadout.Get(eq.Slot); current != nil {
		if ok, reason, err := c.Unequip(ctx, eq.Slot); err != nil || !ok {
			return ok, reason, err
		}
	}

	taken, found := c.inventory.RemoveEquipmentInstance(instanceID)
	if !found {
		return false, "", fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
	}
	c.loadout.put(taken.Slot, taken)

	metrics.EquipOperations.WithLabelValues("equip", taken.Slot).Inc()
	c.publish(ctx, event.New(event.EquipmentEquipped, event.EquipPayloadV1{
		CharacterID: c.ID,
		ItemID:      taken.ID,
		InstanceID:  taken.InstanceID,
		Slot:        taken.Slot,
	}))
	return true, "", nil
}

// Unequip moves the equipped item in a slot back into the inventory.
// Fails with a reason when the inventory has no empty slot for it.
func (c *Character) Unequip(ctx context.Context, slot string) (bool, string, error) {
	eq := c.loadout.Get(slot)
	if eq == nil {
		return false, "", fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slot)
	}

	if c.inventory.FreeSlots() == 0 {
		return false, "no inventory space to unequip " + eq.Name, nil
	}

	taken := c.loadout.take(slot)
	if !c.inventory.AddEquipment([]*domain.EquipmentItem{taken}) {
		// FreeSlots said there was room; restore and report
		c.loadout.put(slot, taken)
		return false, "no inventory space to unequip " + eq.Name, nil
	}

	metrics.EquipOperations.WithLabelValues("unequip", slot).Inc()
	c.publish(ctx, event.New(event.EquipmentUnequipped, event.EquipPayloadV1{
		CharacterID: c.ID,
		ItemID:      taken.ID,
		InstanceID:  taken.InstanceID,
		Slot:        slot,
	}))
	return true, "", nil
}

// ApplyEnchantment applies an enchantment to an equipped or carried
// equipment instance. Applicability failures return ok=false with a reason;
// family rule violations surface as errors from the equipment model.
func (c *Character) ApplyEnchantment(ctx context.Context, instanceID string, ench domain.Enchantment) (bool, string, error) {
	eq := c.findAnyInstance(instanceID)
	if eq == nil {
		return false, "", fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
	}

	model := equipment.NewModel(eq, c.buffs)
	if ok, reason := model.CanApplyEnchantment(ctx, ench); !ok {
		metrics.EnchantsRejected.WithLabelValues("not_applicable").Inc()
		return false, reason, nil
	}

	removed, err := model.ApplyEnchantment(ctx, ench)
	if err != nil {
		metrics.EnchantsRejected.WithLabelValues("rule_violation").Inc()
		return false, "", err
	}

	metrics.EnchantsApplied.Inc()
	for _, r := range removed {
		c.publish(ctx, event.New(event.EnchantmentRemoved, event.EnchantmentPayloadV1{
			CharacterID:   c.ID,
			ItemID:        eq.ID,
			InstanceID:    eq.InstanceID,
			EnchantmentID: r.ID,
		}))
	}
	c.publish(ctx, event.New(event.EnchantmentApplied, event.EnchantmentPayloadV1{
		CharacterID:   c.ID,
		ItemID:        eq.ID,
		InstanceID:    eq.InstanceID,
		EnchantmentID: ench.ID,
	}))
	return true, "", nil
}

// Repair restores durability on an equipped slot and returns the amount
// actually restored
func (c *Character) Repair(ctx context.Context, slot string, opts *equipment.RepairOptions) (int, error) {
	eq := c.loadout.Get(slot)
	if eq == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slot)
	}

	restored := equipment.NewModel(eq, c.buffs).Repair(opts)
	if restored > 0 {
		metrics.RepairsPerformed.Inc()
		c.publish(ctx, event.New(event.EquipmentRepaired, event.RepairPayloadV1{
			CharacterID: c.ID,
			ItemID:      eq.ID,
			InstanceID:  eq.InstanceID,
			Restored:    restored,
		}))
	}
	return restored, nil
}

// TakeDurabilityLoss applies wear to an equipped slot
func (c *Character) TakeDurabilityLoss(slot string, amount int) error {
	eq := c.loadout.Get(slot)
	if eq == nil {
		return fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slot)
	}
	equipment.NewModel(eq, c.buffs).TakeDurabilityLoss(amount)
	return nil
}

// AttackDamage returns the effective damage range of the main-hand weapon,
// folding in durability effectiveness, enchantments, crafted stats, and
// active combat buffs. An empty main hand deals [1,1].
func (c *Character) AttackDamage() (int, int) {
	main := c.loadout.MainHand()
	if main == nil {
		return 1, 1
	}
	model := equipment.NewModel(main, c.buffs)
	return model.EffectiveDamageMin(), model.EffectiveDamageMax()
}

// DefenseTotal sums effective defense across all equipped items
func (c *Character) DefenseTotal() int {
	total := 0
	c.loadout.Each(func(_ string, eq *domain.EquipmentItem) {
		total += equipment.NewModel(eq, c.buffs).EffectiveDefense()
	})
	return total
}

// AddBuff hands a buff to the aggregator and announces it
func (c *Character) AddBuff(ctx context.Context, b *domain.ActiveBuff) {
	c.buffs.Add(b)
	c.publish(ctx, event.New(event.BuffAdded, event.BuffPayloadV1{
		CharacterID: c.ID,
		BuffID:      b.ID,
		EffectType:  string(b.EffectType),
		Category:    b.Category,
		Bonus:       b.Bonus,
	}))
}

// Update advances buff time by dt seconds
func (c *Character) Update(dt float64) {
	c.buffs.Update(dt)
}

// ConsumeBuffsForAction clears the one-shot buffs matching an action and
// returns them
func (c *Character) ConsumeBuffsForAction(actionType, category string) []domain.ActiveBuff {
	consumed := c.buffs.ConsumeBuffsForAction(actionType, category)
	for _, b := range consumed {
		metrics.BuffsConsumed.WithLabelValues(string(b.EffectType)).Inc()
	}
	return consumed
}

// IsSoulbound reports whether an instance (equipped or carried) is bound to
// this character
func (c *Character) IsSoulbound(instanceID string) bool {
	eq := c.findAnyInstance(instanceID)
	if eq == nil {
		return false
	}
	return equipment.NewModel(eq, nil).IsSoulbound()
}

// onBuffEnded forwards buff expiry and consumption out of the aggregator as
// events. The aggregator itself stays event-bus-agnostic.
func (c *Character) onBuffEnded(b domain.ActiveBuff, consumed bool) {
	eventType := event.BuffExpired
	if consumed {
		eventType = event.BuffConsumed
	}
	c.publish(context.Background(), event.New(eventType, event.BuffPayloadV1{
		CharacterID: c.ID,
		BuffID:      b.ID,
		EffectType:  string(b.EffectType),
		Category:    b.Category,
		Bonus:       b.Bonus,
	}))
}

func (c *Character) findInventoryInstance(instanceID string) *domain.EquipmentItem {
	for i := 0; i < c.inventory.Size(); i++ {
		s, _ := c.inventory.Slot(i)
		if s != nil && s.Equipment != nil && s.Equipment.InstanceID == instanceID {
			return s.Equipment
		}
	}
	return nil
}

// findAnyInstance searches the inventory first, then the loadout
func (c *Character) findAnyInstance(instanceID string) *domain.EquipmentItem {
	if eq := c.findInventoryInstance(instanceID); eq != nil {
		return eq
	}
	_, eq := c.loadout.FindInstance(instanceID)
	return eq
}

func (c *Character) publish(ctx context.Context, ev event.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", ev.Type, "error", err)
	}
}

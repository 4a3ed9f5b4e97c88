package equipment

import (
	"github.com/emberwake/emberwake/internal/domain"
)

// BonusSource supplies externally-aggregated multiplier bonuses (buffs).
// The model works without one; derived stats then use item-local bonuses only.
type BonusSource interface {
	GetDamageBonus(category string) float64
	GetDefenseBonus() float64
}

// Model wraps a unique equipment instance and owns its numeric invariants:
// durability stays in [0,max], derived stats fold effectiveness and bonus
// multipliers the same way everywhere, and the enchantment list never holds
// two entries of the same family. All durability mutation goes through
// Repair and TakeDurabilityLoss.
type Model struct {
	item  *domain.EquipmentItem
	buffs BonusSource
}

// NewModel wraps an equipment instance. buffs may be nil.
func NewModel(item *domain.EquipmentItem, buffs BonusSource) *Model {
	return &Model{item: item, buffs: buffs}
}

// Item exposes the wrapped instance for serialization and display
func (m *Model) Item() *domain.EquipmentItem { return m.item }

// Effectiveness returns the durability-derived stat multiplier. The curve
// is continuous: full effectiveness at or above half durability, then a
// linear slide down to the 0.5 floor at zero. Equipment never becomes
// unusable.
func Effectiveness(current, max int) float64 {
	if current <= 0 || max <= 0 {
		return effectivenessFloor
	}
	ratio := float64(current) / float64(max)
	if ratio >= effectivenessFullFrom {
		return 1.0
	}
	return 1.0 - (effectivenessFullFrom-ratio)*0.5
}

// Effectiveness returns the wrapped item's current effectiveness
func (m *Model) Effectiveness() float64 {
	return Effectiveness(m.item.DurabilityCurrent, m.item.DurabilityMax)
}

// damageMultiplier merges the three additive multiplier sources: crafted
// stats, applied enchantments, and (tools only) the efficiency stat, plus
// any external buff bonus.
func (m *Model) damageMultiplier() float64 {
	sum := m.item.CraftedStats.Modifier(EffectDamageMultiplier)
	sum += m.item.Bonuses[EffectDamageMultiplier]
	for _, ench := range m.item.Enchantments {
		if ench.Effect.Type == EffectDamageMultiplier {
			sum += ench.Effect.Value
		}
	}
	if m.SemanticType() == TypeTool {
		sum += m.item.Efficiency
	}
	if m.buffs != nil {
		sum += m.buffs.GetDamageBonus("combat")
	}
	return 1.0 + sum
}

func (m *Model) defenseMultiplier() float64 {
	sum := m.item.CraftedStats.Modifier(EffectDefenseMultiplier)
	sum += m.item.Bonuses[EffectDefenseMultiplier]
	for _, ench := range m.item.Enchantments {
		if ench.Effect.Type == EffectDefenseMultiplier {
			sum += ench.Effect.Value
		}
	}
	if m.buffs != nil {
		sum += m.buffs.GetDefenseBonus()
	}
	return 1.0 + sum
}

// EffectiveDamageMin returns the low end of the damage range after
// effectiveness and multipliers, truncated to an integer
func (m *Model) EffectiveDamageMin() int {
	return int(float64(m.item.DamageMin) * m.Effectiveness() * m.damageMultiplier())
}

// EffectiveDamageMax returns the high end of the damage range after
// effectiveness and multipliers, truncated to an integer
func (m *Model) EffectiveDamageMax() int {
	return int(float64(m.item.DamageMax) * m.Effectiveness() * m.damageMultiplier())
}

// EffectiveDefense returns defense after effectiveness and multipliers,
// truncated to an integer
func (m *Model) EffectiveDefense() int {
	return int(float64(m.item.Defense) * m.Effectiveness() * m.defenseMultiplier())
}

// RepairOptions selects how much durability to restore. Exactly one of
// Amount or Percent should be set; a nil options value means full repair.
type RepairOptions struct {
	Amount  int
	Percent float64
}

// Repair restores durability and returns the amount actually restored,
// which may be 0 when already at max. Current durability never exceeds max.
func (m *Model) Repair(opts *RepairOptions) int {
	missing := m.item.DurabilityMax - m.item.DurabilityCurrent
	if missing <= 0 {
		return 0
	}

	restore := missing
	if opts != nil {
		switch {
		case opts.Amount > 0:
			restore = opts.Amount
		case opts.Percent > 0:
			restore = int(float64(m.item.DurabilityMax) * opts.Percent)
		}
	}
	if restore > missing {
		restore = missing
	}
	if restore < 0 {
		restore = 0
	}

	m.item.DurabilityCurrent += restore
	return restore
}

// TakeDurabilityLoss reduces durability by amount, flooring at zero.
// Returns the new current durability.
func (m *Model) TakeDurabilityLoss(amount int) int {
	if amount < 0 {
		amount = 0
	}
	m.item.DurabilityCurrent -= amount
	if m.item.DurabilityCurrent < 0 {
		m.item.DurabilityCurrent = 0
	}
	return m.item.DurabilityCurrent
}

// NeedsRepair reports whether durability is below max
func (m *Model) NeedsRepair() bool {
	return m.item.DurabilityCurrent < m.item.DurabilityMax
}

// Urgency classifies repair need from the current durability percentage
func (m *Model) Urgency() RepairUrgency {
	if m.item.DurabilityCurrent >= m.item.DurabilityMax {
		return UrgencyNone
	}
	if m.item.DurabilityCurrent <= 0 {
		return UrgencyCritical
	}
	ratio := float64(m.item.DurabilityCurrent) / float64(m.item.DurabilityMax)
	switch {
	case ratio >= urgencyLowThreshold:
		return UrgencyLow
	case ratio >= urgencyMediumThreshold:
		return UrgencyMedium
	default:
		return UrgencyHigh
	}
}

// IsSoulbound reports whether the item is bound: either its own flag is set
// or any applied enchantment carries a soulbound effect
func (m *Model) IsSoulbound() bool {
	if m.item.Soulbound {
		return true
	}
	for _, ench := range m.item.Enchantments {
		if ench.Effect.Type == EffectSoulbound {
			return true
		}
	}
	return false
}

// SemanticType resolves the item's type for enchanting purposes. An explicit
// item_type wins; otherwise it is inferred from the slot: hand slots with
// damage are weapons, hand slots without are tools, armor slots are armor,
// anything else is an accessory.
func (m *Model) SemanticType() string {
	if m.item.ItemType != "" {
		return m.item.ItemType
	}
	if m.item.IsWeaponSlot() {
		if m.item.DamageMax > 0 {
			return TypeWeapon
		}
		return TypeTool
	}
	if domain.ArmorSlots[m.item.Slot] {
		return TypeArmor
	}
	return TypeAccessory
}

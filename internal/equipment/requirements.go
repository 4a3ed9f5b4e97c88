package equipment

import (
	"fmt"
	"sort"

	"github.com/emberwake/emberwake/internal/domain"
)

// StatsProvider is the external character-stats lookup consumed by equip
// requirement checks
type StatsProvider interface {
	Level() int
	GetStat(name string) int
}

// statAliases maps requirement keys (including shorthand forms found in
// older content) to canonical stat names
var statAliases = map[string]string{
	"str":          "strength",
	"strength":     "strength",
	"def":          "defense",
	"defense":      "defense",
	"vit":          "vitality",
	"vitality":     "vitality",
	"lck":          "luck",
	"luck":         "luck",
	"agi":          "agility",
	"agility":      "agility",
	"dex":          "agility",
	"dexterity":    "agility",
	"int":          "intelligence",
	"intelligence": "intelligence",
}

// CanonicalStat resolves a requirement key to its canonical stat name.
// Unknown keys are returned as-is so content with new stats still resolves.
func CanonicalStat(name string) string {
	if canonical, ok := statAliases[name]; ok {
		return canonical
	}
	return name
}

// CanEquip checks the character against the item's level and stat
// requirements. Returns false plus the first unmet requirement's reason;
// requirements are checked in sorted key order so the reported reason is
// deterministic.
func (m *Model) CanEquip(stats StatsProvider) (bool, string) {
	if stats.Level() < m.item.RequiredLevel {
		return false, fmt.Sprintf("requires level %d (you are level %d)",
			m.item.RequiredLevel, stats.Level())
	}

	if len(m.item.Requirements) == 0 {
		return true, ""
	}

	keys := make([]string, 0, len(m.item.Requirements))
	for k := range m.item.Requirements {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		required := m.item.Requirements[key]
		stat := CanonicalStat(key)
		if have := stats.GetStat(stat); have < required {
			return false, fmt.Sprintf("requires %d %s (you have %d)", required, stat, have)
		}
	}
	return true, ""
}

// CanOccupyHands checks the hand-type exclusivity rules for equipping
// candidate into targetSlot, given the current main and off hand contents.
// Conflicts are surfaced, never silently resolved by unequipping.
func CanOccupyHands(candidate *domain.EquipmentItem, targetSlot string, main, off *domain.EquipmentItem) (bool, string) {
	switch targetSlot {
	case domain.SlotMainHand:
		if candidate.HandType == domain.HandOffHandOnly {
			return false, fmt.Sprintf("%s can only be equipped in the off hand", candidate.Name)
		}
		if candidate.HandType == domain.HandTwoHanded && off != nil {
			return false, fmt.Sprintf("%s requires both hands; unequip %s first", candidate.Name, off.Name)
		}
		return true, ""

	case domain.SlotOffHand:
		if candidate.HandType == domain.HandTwoHanded {
			return false, fmt.Sprintf("%s requires both hands and cannot go in the off hand", candidate.Name)
		}
		if main != nil && main.HandType == domain.HandTwoHanded {
			return false, fmt.Sprintf("%s occupies both hands", main.Name)
		}
		if main != nil && main.HandType == domain.HandOneHanded &&
			candidate.DamageMax > 0 && main.Bonuses[BonusDualWield] == 0 {
			return false, fmt.Sprintf("%s cannot be paired with an off-hand weapon", main.Name)
		}
		return true, ""
	}
	return true, ""
}

package equipment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/logger"
)

// ParseFamilyTier splits an enchantment id at its final numeric suffix.
// "sharpness_3" has family "sharpness" and tier 3. An id without a numeric
// suffix is its own family at tier 0.
func ParseFamilyTier(id string) (family string, tier int) {
	idx := strings.LastIndex(id, "_")
	if idx < 0 {
		return id, 0
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return id, 0
	}
	return id[:idx], n
}

// ApplyEnchantment applies an enchantment to the wrapped item, enforcing the
// family rules: an exact duplicate is rejected, a lower tier of an already
// present family is rejected, and a higher tier always evicts the lower one,
// whether or not the content declares the tiers as conflicts. Conflict
// clearing is bidirectional on top of that: enchantments listed in the new
// effect's conflicts are removed, and so are existing enchantments that list
// the new id in theirs.
//
// Returns the enchantments that were removed.
func (m *Model) ApplyEnchantment(ctx context.Context, ench domain.Enchantment) ([]domain.Enchantment, error) {
	if m.item.HasEnchantment(ench.ID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyApplied, ench.ID)
	}

	family, tier := ParseFamilyTier(ench.ID)
	for _, existing := range m.item.Enchantments {
		existingFamily, existingTier := ParseFamilyTier(existing.ID)
		if existingFamily == family && existingTier > tier {
			return nil, fmt.Errorf("%w: %s (tier %d) blocks %s",
				domain.ErrHigherTierPresent, existing.ID, existingTier, ench.ID)
		}
	}

	removed := m.evictFamily(family)
	removed = append(removed, m.clearConflicts(ench)...)
	m.item.Enchantments = append(m.item.Enchantments, ench)

	if len(removed) > 0 {
		ids := make([]string, 0, len(removed))
		for _, r := range removed {
			ids = append(ids, r.ID)
		}
		logger.FromContext(ctx).Debug("Enchantment conflicts cleared",
			"applied", ench.ID, "removed", strings.Join(ids, ","))
	}
	return removed, nil
}

// evictFamily removes every remaining enchantment of the given family. The
// higher-tier check has already run, so anything left in the family is a
// superseded lower tier. At most one entry per family survives an apply.
func (m *Model) evictFamily(family string) []domain.Enchantment {
	var removed []domain.Enchantment
	kept := m.item.Enchantments[:0]
	for _, existing := range m.item.Enchantments {
		if existingFamily, _ := ParseFamilyTier(existing.ID); existingFamily == family {
			removed = append(removed, existing)
		} else {
			kept = append(kept, existing)
		}
	}
	m.item.Enchantments = kept
	return removed
}

// clearConflicts removes every existing enchantment in conflict with the
// incoming one, in either direction.
func (m *Model) clearConflicts(incoming domain.Enchantment) []domain.Enchantment {
	incomingConflicts := make(map[string]bool, len(incoming.Effect.ConflictsWith))
	for _, id := range incoming.Effect.ConflictsWith {
		incomingConflicts[id] = true
	}

	var removed []domain.Enchantment
	kept := m.item.Enchantments[:0]
	for _, existing := range m.item.Enchantments {
		conflict := incomingConflicts[existing.ID]
		if !conflict {
			for _, id := range existing.Effect.ConflictsWith {
				if id == incoming.ID {
					conflict = true
					break
				}
			}
		}
		if conflict {
			removed = append(removed, existing)
		} else {
			kept = append(kept, existing)
		}
	}
	m.item.Enchantments = kept
	return removed
}

// RemoveEnchantment removes the enchantment with the given id. Returns the
// removed record and whether it was present.
func (m *Model) RemoveEnchantment(id string) (domain.Enchantment, bool) {
	for i, ench := range m.item.Enchantments {
		if ench.ID == id {
			m.item.Enchantments = append(m.item.Enchantments[:i], m.item.Enchantments[i+1:]...)
			return ench, true
		}
	}
	return domain.Enchantment{}, false
}

// CanApplyEnchantment validates enchant applicability against the item's
// semantic type. Validation falls through three tiers so both older and
// newer enchantment records resolve:
//  1. tag-based compatibility when the enchantment carries tags
//  2. the legacy explicit applicable-type allow-list
//  3. default-allow with a warning when no validation data exists at all
func (m *Model) CanApplyEnchantment(ctx context.Context, ench domain.Enchantment) (bool, string) {
	itemType := m.SemanticType()

	if len(ench.Tags) > 0 {
		for _, tag := range ench.Tags {
			if tag == itemType || tag == TagAnyItem {
				return true, ""
			}
		}
		return false, fmt.Sprintf("%s cannot be applied to %s items", ench.ID, itemType)
	}

	if len(ench.Effect.ApplicableTo) > 0 {
		for _, allowed := range ench.Effect.ApplicableTo {
			if allowed == itemType {
				return true, ""
			}
		}
		return false, fmt.Sprintf("%s cannot be applied to %s items", ench.ID, itemType)
	}

	logger.FromContext(ctx).Warn("Enchantment has no applicability data, allowing by default",
		"enchantment_id", ench.ID, "item_id", m.item.ID, "item_type", itemType)
	return true, ""
}

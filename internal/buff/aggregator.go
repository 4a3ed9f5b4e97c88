package buff

import (
	"github.com/emberwake/emberwake/internal/domain"
)

// Action types recognized by ConsumeBuffsForAction
const (
	ActionAttack = "attack"
	ActionGather = "gather"
	ActionCraft  = "craft"
)

// Default category sets per action type, used when the caller does not
// narrow to a specific category
var (
	attackCategories = map[string]bool{"combat": true, "damage": true}
	gatherCategories = map[string]bool{"mining": true, "forestry": true, "fishing": true, "gathering": true}
	craftCategories  = map[string]bool{"smithing": true, "alchemy": true, "cooking": true, "carpentry": true, "runecraft": true}
)

// EndedFunc observes a buff leaving the aggregator, either by expiry or by
// consumption. Fire-and-forget; the aggregator does not depend on one.
type EndedFunc func(buff domain.ActiveBuff, consumed bool)

// Aggregator owns a character's active buffs: time decay, expiry, and the
// per-category bonus sums folded into derived stats. One aggregator per
// character; all calls happen on that character's update thread.
type Aggregator struct {
	buffs   []*domain.ActiveBuff
	onEnded EndedFunc
}

// New creates an empty aggregator. onEnded may be nil.
func New(onEnded EndedFunc) *Aggregator {
	return &Aggregator{onEnded: onEnded}
}

// Add takes ownership of a buff produced by a skill or consumable
func (a *Aggregator) Add(b *domain.ActiveBuff) {
	if b.Remaining == 0 {
		b.Remaining = b.Duration
	}
	a.buffs = append(a.buffs, b)
}

// Update advances buff time by dt and evicts everything that expires.
// Each eviction is signaled through the ended callback.
func (a *Aggregator) Update(dt float64) {
	if dt <= 0 {
		return
	}
	kept := a.buffs[:0]
	for _, b := range a.buffs {
		b.Remaining -= dt
		if b.Expired() {
			a.signalEnded(*b, false)
		} else {
			kept = append(kept, b)
		}
	}
	a.buffs = kept
}

// GetTotalBonus sums the bonus values of all buffs matching both the effect
// type and the category exactly
func (a *Aggregator) GetTotalBonus(effectType domain.BuffEffectType, category string) float64 {
	total := 0.0
	for _, b := range a.buffs {
		if b.EffectType == effectType && b.Category == category {
			total += b.Bonus
		}
	}
	return total
}

// GetDamageBonus returns the summed empower bonus for a category
func (a *Aggregator) GetDamageBonus(category string) float64 {
	return a.GetTotalBonus(domain.BuffEmpower, category)
}

// GetDefenseBonus returns the summed fortify bonus for combat
func (a *Aggregator) GetDefenseBonus() float64 {
	return a.GetTotalBonus(domain.BuffFortify, "combat")
}

// GetMovementSpeedBonus returns the summed quicken bonus for movement
func (a *Aggregator) GetMovementSpeedBonus() float64 {
	return a.GetTotalBonus(domain.BuffQuicken, "movement")
}

// ConsumeBuffsForAction removes all consume-on-use buffs whose category
// matches the action's classification. A non-empty category narrows the
// match to exactly that category; otherwise the action's default category
// set applies. Returns the consumed buffs.
func (a *Aggregator) ConsumeBuffsForAction(actionType, category string) []domain.ActiveBuff {
	matches := a.categoryMatcher(actionType, category)
	if matches == nil {
		return nil
	}

	var consumed []domain.ActiveBuff
	kept := a.buffs[:0]
	for _, b := range a.buffs {
		if b.ConsumeOnUse && matches(b.Category) {
			consumed = append(consumed, *b)
			a.signalEnded(*b, true)
		} else {
			kept = append(kept, b)
		}
	}
	a.buffs = kept
	return consumed
}

func (a *Aggregator) categoryMatcher(actionType, category string) func(string) bool {
	if category != "" {
		return func(c string) bool { return c == category }
	}
	var set map[string]bool
	switch actionType {
	case ActionAttack:
		set = attackCategories
	case ActionGather:
		set = gatherCategories
	case ActionCraft:
		set = craftCategories
	default:
		return nil
	}
	return func(c string) bool { return set[c] }
}

// Buffs returns a snapshot of the active buffs
func (a *Aggregator) Buffs() []domain.ActiveBuff {
	out := make([]domain.ActiveBuff, 0, len(a.buffs))
	for _, b := range a.buffs {
		out = append(out, *b)
	}
	return out
}

// Len returns the number of active buffs
func (a *Aggregator) Len() int { return len(a.buffs) }

// Replace swaps in a restored buff set without firing ended signals. Buffs
// that already ran out while persisted are dropped silently.
func (a *Aggregator) Replace(buffs []*domain.ActiveBuff) {
	a.buffs = a.buffs[:0]
	for _, b := range buffs {
		if b != nil && b.Remaining > 0 {
			a.buffs = append(a.buffs, b)
		}
	}
}

// ToSaveData serializes the active buffs into the persisted list shape
func (a *Aggregator) ToSaveData() []map[string]any {
	out := make([]map[string]any, 0, len(a.buffs))
	for _, b := range a.buffs {
		out = append(out, b.ToSaveData())
	}
	return out
}

func (a *Aggregator) signalEnded(b domain.ActiveBuff, consumed bool) {
	if a.onEnded != nil {
		a.onEnded(b, consumed)
	}
}

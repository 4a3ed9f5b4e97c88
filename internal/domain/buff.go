package domain

// BuffEffectType classifies what a buff boosts
type BuffEffectType string

const (
	BuffEmpower    BuffEffectType = "empower"    // damage
	BuffQuicken    BuffEffectType = "quicken"    // speed
	BuffFortify    BuffEffectType = "fortify"    // defense
	BuffPierce     BuffEffectType = "pierce"     // armor penetration
	BuffEnrich     BuffEffectType = "enrich"     // gathering yield
	BuffElevate    BuffEffectType = "elevate"    // experience gain
	BuffDevastate  BuffEffectType = "devastate"  // critical chance
	BuffTranscend  BuffEffectType = "transcend"  // crafting quality
	BuffRegenerate BuffEffectType = "regenerate" // health regen
)

// ActiveBuff is a time-limited, category-tagged bonus. Duration decays via
// the aggregator's Update; consume-on-use buffs are cleared by the first
// matching action instead.
type ActiveBuff struct {
	ID           string
	Name         string
	EffectType   BuffEffectType
	Category     string
	Bonus        float64
	Duration     float64
	Remaining    float64
	ConsumeOnUse bool
}

// Expired reports whether the buff has run out of time
func (b *ActiveBuff) Expired() bool {
	return b.Remaining <= 0
}

// ToSaveData serializes the buff into the persisted map shape
func (b *ActiveBuff) ToSaveData() map[string]any {
	return map[string]any{
		"id":             b.ID,
		SaveKeyName:      b.Name,
		"effect_type":    string(b.EffectType),
		"buff_category":  b.Category,
		"bonus":          b.Bonus,
		"duration":       b.Duration,
		"remaining":      b.Remaining,
		"consume_on_use": b.ConsumeOnUse,
	}
}

package domain

// QualityTier is the discrete quality band derived from a crafting score
type QualityTier string

const (
	QualityNormal     QualityTier = "Normal"
	QualityFine       QualityTier = "Fine"
	QualitySuperior   QualityTier = "Superior"
	QualityMasterwork QualityTier = "Masterwork"
	QualityLegendary  QualityTier = "Legendary"
)

// Quality score breakpoints. A score at or above a breakpoint lands in
// that tier.
const (
	scoreFine       = 0.25
	scoreSuperior   = 0.50
	scoreMasterwork = 0.75
	scoreLegendary  = 0.90
)

// QualityTierForScore maps a crafting quality score in [0,1] to its tier
func QualityTierForScore(score float64) QualityTier {
	switch {
	case score >= scoreLegendary:
		return QualityLegendary
	case score >= scoreMasterwork:
		return QualityMasterwork
	case score >= scoreSuperior:
		return QualitySuperior
	case score >= scoreFine:
		return QualityFine
	default:
		return QualityNormal
	}
}

// CraftedStats is the quality-derived bonus data attached to an equipment
// instance when it is produced by the crafting minigame.
type CraftedStats struct {
	QualityScore   float64
	QualityTier    QualityTier
	RarityOverride Rarity
	Modifiers      map[string]float64
	Discipline     string
	FirstTry       bool
	Perfect        bool
}

// NewCraftedStats builds CraftedStats with the tier derived from the score
func NewCraftedStats(score float64, discipline string, modifiers map[string]float64) *CraftedStats {
	return &CraftedStats{
		QualityScore: score,
		QualityTier:  QualityTierForScore(score),
		Modifiers:    modifiers,
		Discipline:   discipline,
	}
}

// Modifier returns the named modifier, zero when absent
func (c *CraftedStats) Modifier(key string) float64 {
	if c == nil || c.Modifiers == nil {
		return 0
	}
	return c.Modifiers[key]
}

// ModifiersEqual compares the modifier maps of two crafted stats, treating
// nil CraftedStats and empty maps as equivalent. Used by stack compatibility.
func ModifiersEqual(a, b *CraftedStats) bool {
	var am, bm map[string]float64
	if a != nil {
		am = a.Modifiers
	}
	if b != nil {
		bm = b.Modifiers
	}
	if len(am) != len(bm) {
		return false
	}
	for k, v := range am {
		bv, ok := bm[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// ToSaveData serializes crafted stats into the persisted map shape
func (c *CraftedStats) ToSaveData() map[string]any {
	data := map[string]any{
		"quality_score": c.QualityScore,
		"quality_tier":  string(c.QualityTier),
		"discipline":    c.Discipline,
		"first_try":     c.FirstTry,
		"perfect":       c.Perfect,
	}
	if c.RarityOverride != "" {
		data["rarity_override"] = string(c.RarityOverride)
	}
	if len(c.Modifiers) > 0 {
		mods := make(map[string]float64, len(c.Modifiers))
		for k, v := range c.Modifiers {
			mods[k] = v
		}
		data["modifiers"] = mods
	}
	return data
}

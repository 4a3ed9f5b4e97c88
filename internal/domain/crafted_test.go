package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityTierForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  QualityTier
	}{
		{0.0, QualityNormal},
		{0.24, QualityNormal},
		{0.25, QualityFine},
		{0.49, QualityFine},
		{0.50, QualitySuperior},
		{0.74, QualitySuperior},
		{0.75, QualityMasterwork},
		{0.89, QualityMasterwork},
		{0.90, QualityLegendary},
		{1.0, QualityLegendary},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QualityTierForScore(tt.score), "score %v", tt.score)
	}
}

func TestNewCraftedStats(t *testing.T) {
	mods := map[string]float64{"damage_multiplier": 0.1}
	stats := NewCraftedStats(0.8, "smithing", mods)

	assert.Equal(t, 0.8, stats.QualityScore)
	assert.Equal(t, QualityMasterwork, stats.QualityTier)
	assert.Equal(t, "smithing", stats.Discipline)
	assert.Equal(t, 0.1, stats.Modifier("damage_multiplier"))
}

func TestModifierNilSafe(t *testing.T) {
	var stats *CraftedStats
	assert.Equal(t, 0.0, stats.Modifier("damage_multiplier"))

	empty := &CraftedStats{}
	assert.Equal(t, 0.0, empty.Modifier("damage_multiplier"))
}

func TestModifiersEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *CraftedStats
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs empty map", nil, &CraftedStats{Modifiers: map[string]float64{}}, true},
		{"nil vs no modifiers", nil, &CraftedStats{}, true},
		{
			"equal maps",
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1}},
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1}},
			true,
		},
		{
			"different values",
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1}},
			&CraftedStats{Modifiers: map[string]float64{"x": 0.2}},
			false,
		},
		{
			"different keys",
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1}},
			&CraftedStats{Modifiers: map[string]float64{"y": 0.1}},
			false,
		},
		{
			"subset",
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1, "y": 0.2}},
			&CraftedStats{Modifiers: map[string]float64{"x": 0.1}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModifiersEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ModifiersEqual(tt.b, tt.a))
		})
	}
}

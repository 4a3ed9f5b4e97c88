package equipment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/domain"
)

func TestParseFamilyTier(t *testing.T) {
	tests := []struct {
		id         string
		wantFamily string
		wantTier   int
	}{
		{"sharpness_1", "sharpness", 1},
		{"sharpness_3", "sharpness", 3},
		{"fire_aspect_2", "fire_aspect", 2},
		{"soulbind", "soulbind", 0},
		{"frost_edge", "frost_edge", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			family, tier := ParseFamilyTier(tt.id)
			assert.Equal(t, tt.wantFamily, family)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func sharpness(tier int, value float64) domain.Enchantment {
	ids := []string{"", "sharpness_1", "sharpness_2", "sharpness_3"}
	conflicts := make([]string, 0, 2)
	for i, id := range ids {
		if i != 0 && i != tier {
			conflicts = append(conflicts, id)
		}
	}
	return domain.Enchantment{
		ID:   ids[tier],
		Name: "Sharpness",
		Effect: domain.EnchantEffect{
			Type:          EffectDamageMultiplier,
			Value:         value,
			ConflictsWith: conflicts,
		},
		Tags: []string{TypeWeapon},
	}
}

func TestApplyEnchantmentDuplicateRejected(t *testing.T) {
	m := NewModel(newSword(100, 100), nil)
	ctx := context.Background()

	_, err := m.ApplyEnchantment(ctx, sharpness(1, 0.1))
	require.NoError(t, err)

	_, err = m.ApplyEnchantment(ctx, sharpness(1, 0.1))
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.Len(t, m.Item().Enchantments, 1)
}

func TestApplyEnchantmentLowerTierBlocked(t *testing.T) {
	m := NewModel(newSword(100, 100), nil)
	ctx := context.Background()

	_, err := m.ApplyEnchantment(ctx, sharpness(2, 0.2))
	require.NoError(t, err)

	_, err = m.ApplyEnchantment(ctx, sharpness(1, 0.1))
	assert.ErrorIs(t, err, domain.ErrHigherTierPresent)
	require.Len(t, m.Item().Enchantments, 1)
	assert.Equal(t, "sharpness_2", m.Item().Enchantments[0].ID)
}

func TestApplyEnchantmentUpgradeEvictsLowerTier(t *testing.T) {
	m := NewModel(newSword(100, 100), nil)
	ctx := context.Background()

	_, err := m.ApplyEnchantment(ctx, sharpness(1, 0.1))
	require.NoError(t, err)

	removed, err := m.ApplyEnchantment(ctx, sharpness(2, 0.2))
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "sharpness_1", removed[0].ID)

	require.Len(t, m.Item().Enchantments, 1)
	assert.Equal(t, "sharpness_2", m.Item().Enchantments[0].ID)
}

func TestApplyEnchantmentUpgradeEvictsWithoutConflictData(t *testing.T) {
	// Tier records that never declare their siblings as conflicts still
	// follow the one-entry-per-family rule
	tierOne := sharpness(1, 0.1)
	tierOne.Effect.ConflictsWith = nil
	tierTwo := sharpness(2, 0.2)
	tierTwo.Effect.ConflictsWith = nil

	m := NewModel(newSword(100, 100), nil)
	ctx := context.Background()

	_, err := m.ApplyEnchantment(ctx, tierOne)
	require.NoError(t, err)

	removed, err := m.ApplyEnchantment(ctx, tierTwo)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "sharpness_1", removed[0].ID)

	require.Len(t, m.Item().Enchantments, 1)
	assert.Equal(t, "sharpness_2", m.Item().Enchantments[0].ID)
}

func TestApplyEnchantmentConflictsAreBidirectional(t *testing.T) {
	// smite lists sharpness in its conflicts; sharpness does not list smite
	smite := domain.Enchantment{
		ID:   "smite_1",
		Name: "Smite",
		Effect: domain.EnchantEffect{
			Type:          EffectDamageMultiplier,
			Value:         0.15,
			ConflictsWith: []string{"sharpness_1", "sharpness_2"},
		},
		Tags: []string{TypeWeapon},
	}
	plainSharpness := sharpness(1, 0.1)
	plainSharpness.Effect.ConflictsWith = nil
	ctx := context.Background()

	t.Run("incoming conflicts remove existing", func(t *testing.T) {
		m := NewModel(newSword(100, 100), nil)
		_, err := m.ApplyEnchantment(ctx, plainSharpness)
		require.NoError(t, err)

		removed, err := m.ApplyEnchantment(ctx, smite)
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Equal(t, "sharpness_1", removed[0].ID)
	})

	t.Run("existing conflicts remove on incoming", func(t *testing.T) {
		m := NewModel(newSword(100, 100), nil)
		_, err := m.ApplyEnchantment(ctx, smite)
		require.NoError(t, err)

		removed, err := m.ApplyEnchantment(ctx, plainSharpness)
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Equal(t, "smite_1", removed[0].ID)
		require.Len(t, m.Item().Enchantments, 1)
		assert.Equal(t, "sharpness_1", m.Item().Enchantments[0].ID)
	})
}

func TestRemoveEnchantment(t *testing.T) {
	m := NewModel(newSword(100, 100), nil)
	ctx := context.Background()

	_, err := m.ApplyEnchantment(ctx, sharpness(1, 0.1))
	require.NoError(t, err)

	removed, ok := m.RemoveEnchantment("sharpness_1")
	assert.True(t, ok)
	assert.Equal(t, "sharpness_1", removed.ID)
	assert.Empty(t, m.Item().Enchantments)

	_, ok = m.RemoveEnchantment("sharpness_1")
	assert.False(t, ok)
}

func TestCanApplyEnchantment(t *testing.T) {
	ctx := context.Background()
	sword := newSword(100, 100) // semantic type: weapon
	m := NewModel(sword, nil)

	t.Run("matching tag allowed", func(t *testing.T) {
		ok, reason := m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID: "sharpness_1", Tags: []string{TypeWeapon},
		})
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("any tag allowed", func(t *testing.T) {
		ok, _ := m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID: "unbreaking_1", Tags: []string{TagAnyItem},
		})
		assert.True(t, ok)
	})

	t.Run("mismatched tag denied with reason", func(t *testing.T) {
		ok, reason := m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID: "protection_1", Tags: []string{TypeArmor},
		})
		assert.False(t, ok)
		assert.Contains(t, reason, "protection_1")
		assert.Contains(t, reason, TypeWeapon)
	})

	t.Run("legacy allow-list used when no tags", func(t *testing.T) {
		ok, _ := m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID:     "efficiency_1",
			Effect: domain.EnchantEffect{ApplicableTo: []string{TypeTool}},
		})
		assert.False(t, ok)

		ok, _ = m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID:     "fire_aspect_1",
			Effect: domain.EnchantEffect{ApplicableTo: []string{TypeWeapon}},
		})
		assert.True(t, ok)
	})

	t.Run("tags take precedence over allow-list", func(t *testing.T) {
		ok, _ := m.CanApplyEnchantment(ctx, domain.Enchantment{
			ID:     "mixed_1",
			Tags:   []string{TypeArmor},
			Effect: domain.EnchantEffect{ApplicableTo: []string{TypeWeapon}},
		})
		assert.False(t, ok)
	})

	t.Run("no applicability data defaults to allow", func(t *testing.T) {
		ok, _ := m.CanApplyEnchantment(ctx, domain.Enchantment{ID: "mystery_1"})
		assert.True(t, ok)
	})
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/domain"
)

func writeEnchantConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enchantments.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEnchantmentRegistryLoads(t *testing.T) {
	path := writeEnchantConfig(t, `{
		"version": "1.0",
		"enchantments": [
			{
				"id": "sharpness_1",
				"name": "Sharpness I",
				"effect": {"type": "damage_multiplier", "value": 0.1, "conflicts_with": ["smite_1"]},
				"tags": ["weapon"]
			},
			{
				"id": "protection_1",
				"name": "Protection I",
				"effect": {"type": "defense_multiplier", "value": 0.1},
				"tags": ["armor"]
			}
		]
	}`)

	registry, err := NewEnchantmentRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"protection_1", "sharpness_1"}, registry.IDs())

	ench, err := registry.Get("sharpness_1")
	require.NoError(t, err)
	assert.Equal(t, "Sharpness I", ench.Name)
	assert.Equal(t, 0.1, ench.Effect.Value)
	assert.Equal(t, []string{"smite_1"}, ench.Effect.ConflictsWith)
}

func TestEnchantmentRegistryMissingFileIsEmpty(t *testing.T) {
	registry, err := NewEnchantmentRegistry(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, registry.IDs())
}

func TestEnchantmentRegistryGetUnknown(t *testing.T) {
	registry, err := NewEnchantmentRegistry("")
	require.NoError(t, err)

	_, err = registry.Get("sharpness_9")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestEnchantmentRegistryRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			"missing version",
			`{"enchantments": [{"id": "a", "effect": {"type": "damage_multiplier"}}]}`,
			ErrInvalidConfig,
		},
		{
			"missing effect type",
			`{"version": "1.0", "enchantments": [{"id": "a", "effect": {"value": 0.1}}]}`,
			ErrInvalidConfig,
		},
		{
			"duplicate id",
			`{"version": "1.0", "enchantments": [
				{"id": "a", "effect": {"type": "damage_multiplier"}},
				{"id": "a", "effect": {"type": "damage_multiplier"}}
			]}`,
			ErrDuplicateItemID,
		},
		{
			"malformed json",
			`{"version":`,
			ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEnchantmentRegistry(writeEnchantConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEnchantmentRegistryReload(t *testing.T) {
	path := writeEnchantConfig(t, `{
		"version": "1.0",
		"enchantments": [{"id": "sharpness_1", "effect": {"type": "damage_multiplier", "value": 0.1}}]
	}`)

	registry, err := NewEnchantmentRegistry(path)
	require.NoError(t, err)
	require.Len(t, registry.IDs(), 1)

	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.1",
		"enchantments": [
			{"id": "sharpness_1", "effect": {"type": "damage_multiplier", "value": 0.1}},
			{"id": "sharpness_2", "effect": {"type": "damage_multiplier", "value": 0.2}}
		]
	}`), 0o644))
	require.NoError(t, registry.Reload())

	assert.Equal(t, []string{"sharpness_1", "sharpness_2"}, registry.IDs())
}

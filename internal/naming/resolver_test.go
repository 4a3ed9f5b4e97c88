package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/domain"
)

func writeAliases(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolvePublicName(t *testing.T) {
	r, err := NewResolver("")
	require.NoError(t, err)
	r.RegisterItem("iron_sword", "Iron Sword")

	tests := []struct {
		input  string
		wantID string
		wantOK bool
	}{
		{"Iron Sword", "iron_sword", true},
		{"iron sword", "iron_sword", true},
		{"IRON SWORD", "iron_sword", true},
		{"Steel Sword", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := r.ResolvePublicName(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		assert.Equal(t, tt.wantID, id, "input %q", tt.input)
	}
}

func TestResolvePublicNameViaConfiguredAliases(t *testing.T) {
	path := writeAliases(t, `{
		"version": "1.0",
		"schema": "item-aliases",
		"aliases": {
			"healing_potion_small": {"display": ["Minor Healing Potion", "hp pot"]}
		}
	}`)

	r, err := NewResolver(path)
	require.NoError(t, err)

	id, ok := r.ResolvePublicName("HP POT")
	assert.True(t, ok)
	assert.Equal(t, "healing_potion_small", id)
}

func TestDisplayName(t *testing.T) {
	r, err := NewResolver("")
	require.NoError(t, err)
	r.RegisterItem("iron_sword", "Iron Sword")

	tests := []struct {
		name   string
		itemID string
		rarity domain.Rarity
		want   string
	}{
		{"registered name without rarity", "iron_sword", "", "Iron Sword"},
		{"common rarity has no prefix", "iron_sword", domain.RarityCommon, "Iron Sword"},
		{"rare prefix", "iron_sword", domain.RarityRare, "Rare Iron Sword"},
		{"legendary prefix", "iron_sword", domain.RarityLegendary, "Legendary Iron Sword"},
		{"unregistered id titles underscores", "steel_greatsword", "", "Steel Greatsword"},
		{"unregistered id with rarity", "steel_greatsword", domain.RarityEpic, "Epic Steel Greatsword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.DisplayName(tt.itemID, tt.rarity))
		})
	}
}

func TestDisplayNamePrefersFirstAlias(t *testing.T) {
	path := writeAliases(t, `{
		"version": "1.0",
		"schema": "item-aliases",
		"aliases": {
			"healing_potion_small": {"display": ["Minor Healing Potion", "hp pot"]}
		}
	}`)

	r, err := NewResolver(path)
	require.NoError(t, err)
	r.RegisterItem("healing_potion_small", "Small Healing Potion")

	assert.Equal(t, "Minor Healing Potion", r.DisplayName("healing_potion_small", ""))
	assert.Equal(t, "Rare Minor Healing Potion", r.DisplayName("healing_potion_small", domain.RarityRare))
}

func TestNewResolverMissingFileFallsBack(t *testing.T) {
	r, err := NewResolver(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "Iron Ore", r.DisplayName("iron_ore", ""))
}

func TestNewResolverRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing version", `{"schema": "item-aliases", "aliases": {}}`},
		{"wrong schema", `{"version": "1.0", "schema": "recipes", "aliases": {}}`},
		{"malformed json", `{"version":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(writeAliases(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestReloadPicksUpNewAliases(t *testing.T) {
	path := writeAliases(t, `{
		"version": "1.0",
		"schema": "item-aliases",
		"aliases": {}
	}`)

	r, err := NewResolver(path)
	require.NoError(t, err)
	_, ok := r.ResolvePublicName("pick")
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.1",
		"schema": "item-aliases",
		"aliases": {"iron_pickaxe": {"display": ["Iron Pickaxe", "pick"]}}
	}`), 0o644))
	require.NoError(t, r.Reload())

	id, ok := r.ResolvePublicName("pick")
	assert.True(t, ok)
	assert.Equal(t, "iron_pickaxe", id)
}

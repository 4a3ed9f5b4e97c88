package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/handler"
)

func testRegistry(t *testing.T) *catalog.EnchantmentRegistry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enchantments.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.0",
		"enchantments": [
			{
				"id": "sharpness_1",
				"name": "Sharpness I",
				"effect": {"type": "damage_multiplier", "value": 0.1},
				"tags": ["weapon"]
			},
			{
				"id": "protection_1",
				"name": "Protection I",
				"effect": {"type": "defense_multiplier", "value": 0.1},
				"tags": ["armor"]
			}
		]
	}`), 0o644))

	registry, err := catalog.NewEnchantmentRegistry(path)
	require.NoError(t, err)
	return registry
}

func TestHandleApplyEnchant(t *testing.T) {
	mgr, _ := testEnv(t)
	registry := testRegistry(t)
	char := seedCharacter(t, mgr, "ada")
	require.NoError(t, char.AddItemByID(context.Background(), "iron_sword", 1))
	instanceID := carriedInstanceID(t, char, "iron_sword")

	w := postJSON(t, handler.HandleApplyEnchant(mgr, registry), "/api/v1/character/equipment/enchant",
		handler.ApplyEnchantRequest{CharacterID: "ada", InstanceID: instanceID, EnchantmentID: "sharpness_1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Enchantment applied")
}

func TestHandleApplyEnchantWrongItemType(t *testing.T) {
	mgr, _ := testEnv(t)
	registry := testRegistry(t)
	char := seedCharacter(t, mgr, "ada")
	require.NoError(t, char.AddItemByID(context.Background(), "iron_sword", 1))

	w := postJSON(t, handler.HandleApplyEnchant(mgr, registry), "/api/v1/character/equipment/enchant",
		handler.ApplyEnchantRequest{
			CharacterID:   "ada",
			InstanceID:    carriedInstanceID(t, char, "iron_sword"),
			EnchantmentID: "protection_1",
		})

	require.Equal(t, http.StatusOK, w.Code)
	var denied handler.DeniedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &denied))
	assert.False(t, denied.Allowed)
	assert.Equal(t, "protection_1 cannot be applied to weapon items", denied.Reason)
}

func TestHandleApplyEnchantDuplicate(t *testing.T) {
	mgr, _ := testEnv(t)
	registry := testRegistry(t)
	char := seedCharacter(t, mgr, "ada")
	require.NoError(t, char.AddItemByID(context.Background(), "iron_sword", 1))
	instanceID := carriedInstanceID(t, char, "iron_sword")

	endpoint := handler.HandleApplyEnchant(mgr, registry)
	req := handler.ApplyEnchantRequest{CharacterID: "ada", InstanceID: instanceID, EnchantmentID: "sharpness_1"}

	w := postJSON(t, endpoint, "/api/v1/character/equipment/enchant", req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, endpoint, "/api/v1/character/equipment/enchant", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already applied")
}

func TestHandleApplyEnchantUnknownEnchantment(t *testing.T) {
	mgr, _ := testEnv(t)
	registry := testRegistry(t)
	seedCharacter(t, mgr, "ada")

	w := postJSON(t, handler.HandleApplyEnchant(mgr, registry), "/api/v1/character/equipment/enchant",
		handler.ApplyEnchantRequest{CharacterID: "ada", InstanceID: "whatever", EnchantmentID: "frost_9"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No such item exists")
}

func TestHandleListEnchantments(t *testing.T) {
	registry := testRegistry(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enchantments", nil)
	w := httptest.NewRecorder()
	handler.HandleListEnchantments(registry).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"protection_1", "sharpness_1"}, resp.Data)
}

func TestHandleGetItemInfo(t *testing.T) {
	_, resolver := testEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/item/info?item=iron+ore", nil)
	w := httptest.NewRecorder()
	handler.HandleGetItemInfo(testItemCatalog(), resolver).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.ItemInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "iron_ore", resp.ItemID)
	assert.Equal(t, "Iron Ore", resp.DisplayName)
	assert.Equal(t, "material", resp.Category)
	assert.Equal(t, domain.DefaultMaterialStack, resp.StackLimit)
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/version", nil)
	w := httptest.NewRecorder()
	handler.HandleVersion().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Version)
	assert.NotEmpty(t, resp.GoVersion)
}

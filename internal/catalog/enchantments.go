package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/emberwake/emberwake/internal/domain"
)

// EnchantmentConfig is the on-disk enchantment definition file
type EnchantmentConfig struct {
	Version      string               `json:"version"`
	Description  string               `json:"description,omitempty"`
	Enchantments []domain.Enchantment `json:"enchantments"`
}

// EnchantmentRegistry resolves enchantment ids to their definitions
type EnchantmentRegistry struct {
	mu   sync.RWMutex
	byID map[string]domain.Enchantment
	path string
}

// NewEnchantmentRegistry loads the registry from a config file. A missing
// file yields an empty registry, not an error.
func NewEnchantmentRegistry(path string) (*EnchantmentRegistry, error) {
	r := &EnchantmentRegistry{
		byID: make(map[string]domain.Enchantment),
		path: path,
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Get resolves an enchantment id
func (r *EnchantmentRegistry) Get(id string) (domain.Enchantment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ench, ok := r.byID[id]
	if !ok {
		return domain.Enchantment{}, fmt.Errorf("%w: enchantment %s", domain.ErrDefinitionNotFound, id)
	}
	return ench, nil
}

// IDs returns all known enchantment ids, sorted
func (r *EnchantmentRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reload re-reads the config file, replacing the registry atomically
func (r *EnchantmentRegistry) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.path == "" {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read enchantment config: %w", err)
	}

	var config EnchantmentConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if config.Version == "" {
		return fmt.Errorf("%w: missing version field", ErrInvalidConfig)
	}

	byID := make(map[string]domain.Enchantment, len(config.Enchantments))
	for _, ench := range config.Enchantments {
		if ench.ID == "" || ench.Effect.Type == "" {
			return fmt.Errorf("%w: enchantment missing id or effect type", ErrInvalidConfig)
		}
		if _, dup := byID[ench.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, ench.ID)
		}
		byID[ench.ID] = ench
	}

	r.byID = byID
	return nil
}

package naming

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/emberwake/emberwake/internal/domain"
)

// AliasPool contains display alias variants for an item
type AliasPool struct {
	Display []string `json:"display"`
}

// Resolver handles item name resolution and display name generation
type Resolver interface {
	// ResolvePublicName converts a player-facing name to an item id
	ResolvePublicName(publicName string) (itemID string, ok bool)

	// DisplayName generates a display name with an optional rarity prefix
	DisplayName(itemID string, rarity domain.Rarity) string

	// Reload reloads the alias configuration
	Reload() error

	// RegisterItem registers an item for public name resolution
	RegisterItem(itemID, publicName string)
}

type resolver struct {
	mu sync.RWMutex

	// public name (lowercased) -> item id
	publicToID map[string]string

	// item id -> registered public name
	idToPublic map[string]string

	// alias pools keyed by item id
	aliases map[string]AliasPool

	aliasesPath string
	titler      cases.Caser
}

// NewResolver creates a naming resolver backed by an alias config file.
// A missing file is not an error; the resolver falls back to titling ids.
func NewResolver(aliasesPath string) (Resolver, error) {
	r := &resolver{
		publicToID:  make(map[string]string),
		idToPublic:  make(map[string]string),
		aliases:     make(map[string]AliasPool),
		aliasesPath: aliasesPath,
		titler:      cases.Title(language.English),
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// RegisterItem adds a public->id name mapping
func (r *resolver) RegisterItem(itemID, publicName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if publicName != "" {
		r.publicToID[strings.ToLower(publicName)] = itemID
		r.idToPublic[itemID] = publicName
	}
}

// ResolvePublicName converts a player-facing name to an item id. Matching
// is case-insensitive and also accepts configured display aliases.
func (r *resolver) ResolvePublicName(publicName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(publicName)
	if id, ok := r.publicToID[needle]; ok {
		return id, true
	}
	for id, pool := range r.aliases {
		for _, alias := range pool.Display {
			if strings.ToLower(alias) == needle {
				return id, true
			}
		}
	}
	return "", false
}

// DisplayName generates a display name with an optional rarity prefix.
// Common rarity shows no prefix.
func (r *resolver) DisplayName(itemID string, rarity domain.Rarity) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := r.baseNameUnlocked(itemID)
	if rarity == "" || rarity == domain.RarityCommon {
		return name
	}
	return fmt.Sprintf(RarityFormatTemplate, r.titler.String(string(rarity)), name)
}

// baseNameUnlocked picks the display form of an item id (caller holds lock):
// the first configured alias, the registered public name, or the id with
// underscores titled away.
func (r *resolver) baseNameUnlocked(itemID string) string {
	if pool, ok := r.aliases[itemID]; ok && len(pool.Display) > 0 {
		return pool.Display[0]
	}
	if public, ok := r.idToPublic[itemID]; ok {
		return public
	}
	return r.titler.String(strings.ReplaceAll(itemID, "_", " "))
}

// Reload reloads the alias configuration
func (r *resolver) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.aliasesPath == "" {
		return nil
	}
	if err := r.loadAliases(); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToLoadAliases, err)
	}
	return nil
}

func (r *resolver) loadAliases() error {
	data, err := os.ReadFile(r.aliasesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var config struct {
		Version string               `json:"version"`
		Schema  string               `json:"schema"`
		Aliases map[string]AliasPool `json:"aliases"`
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf(ErrContextFailedToParseConfig+": %w", r.aliasesPath, err)
	}

	if config.Version == "" {
		return fmt.Errorf(ErrMsgMissingVersionField, r.aliasesPath)
	}
	if config.Schema != SchemaItemAliases {
		return fmt.Errorf(ErrMsgInvalidSchema, r.aliasesPath, SchemaItemAliases, config.Schema)
	}

	if config.Aliases != nil {
		r.aliases = config.Aliases
	}
	return nil
}

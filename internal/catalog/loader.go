package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/emberwake/emberwake/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateItemID = errors.New("duplicate item id")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// Config represents the JSON configuration for catalog items
type Config struct {
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Items       []StaticDef `json:"items"`
}

// Loader handles loading and validating catalog configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct {
	validate *validator.Validate
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads and parses a catalog JSON file, then validates it
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if err := l.Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the catalog configuration for errors
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: no items defined", ErrInvalidConfig)
	}

	// Track ids for duplicate detection
	seen := make(map[string]bool, len(config.Items))

	for i := range config.Items {
		def := &config.Items[i]

		if err := l.validate.Struct(def); err != nil {
			return fmt.Errorf("%w: item %d (%s): %v", ErrInvalidConfig, i, def.ID, err)
		}

		if seen[def.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, def.ID)
		}
		seen[def.ID] = true

		if err := l.validateVariantFields(i, def); err != nil {
			return err
		}
	}

	return nil
}

// validateVariantFields checks constraints the struct tags cannot express
func (l *catalogLoader) validateVariantFields(i int, def *StaticDef) error {
	switch def.Category() {
	case domain.CategoryEquipment:
		if def.Slot == "" {
			return fmt.Errorf("%w: item %d (%s): equipment requires a slot", ErrInvalidConfig, i, def.ID)
		}
		if def.DurabilityMax <= 0 {
			return fmt.Errorf("%w: item %d (%s): equipment requires durability_max > 0", ErrInvalidConfig, i, def.ID)
		}
		if def.MaxStack > domain.EquipmentStack {
			return fmt.Errorf("%w: item %d (%s): equipment max_stack must be 1", ErrInvalidConfig, i, def.ID)
		}
	case domain.CategoryConsumable:
		switch def.ItemSubtype {
		case domain.ConsumablePotion, domain.ConsumableFood, domain.ConsumableScroll, "":
		default:
			return fmt.Errorf("%w: item %d (%s): unknown consumable subtype %q", ErrInvalidConfig, i, def.ID, def.ItemSubtype)
		}
	case domain.CategoryPlaceable:
		switch def.ItemSubtype {
		case domain.PlaceableStation, domain.PlaceableTurret, domain.PlaceableTrap, domain.PlaceableBomb, domain.PlaceableUtility:
		default:
			return fmt.Errorf("%w: item %d (%s): unknown placeable subtype %q", ErrInvalidConfig, i, def.ID, def.ItemSubtype)
		}
		if def.ItemSubtype == domain.PlaceableStation && def.StationDiscipline == "" {
			return fmt.Errorf("%w: item %d (%s): station requires a discipline", ErrInvalidConfig, i, def.ID)
		}
	}
	return nil
}

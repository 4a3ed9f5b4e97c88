package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgItemNotFound       = "item not found"
	ErrMsgDefinitionNotFound = "definition not found"
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgSlotNotFound       = "slot not found"

	// State errors
	ErrMsgUnknownCategory = "unknown item category"
	ErrMsgInvalidQuantity = "quantity" // Used in contains checks for various quantity errors
	ErrMsgNotEquipment    = "item is not equipment"
	ErrMsgSlotOutOfRange  = "slot index out of range"

	// Rule violations
	ErrMsgAlreadyApplied    = "enchantment already applied"
	ErrMsgHigherTierPresent = "higher tier already present"
	ErrMsgRequirementNotMet = "requirement not met"
	ErrMsgHandConflict      = "hand slot conflict"

	// Capacity errors
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgInsufficientQuantity = "insufficient quantity"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Lookup errors
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrDefinitionNotFound = errors.New(ErrMsgDefinitionNotFound)
	ErrCharacterNotFound  = errors.New(ErrMsgCharacterNotFound)
	ErrSlotNotFound       = errors.New(ErrMsgSlotNotFound)

	// State errors
	ErrUnknownCategory = errors.New(ErrMsgUnknownCategory)
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrNotEquipment    = errors.New(ErrMsgNotEquipment)
	ErrSlotOutOfRange  = errors.New(ErrMsgSlotOutOfRange)

	// Rule violations
	ErrAlreadyApplied    = errors.New(ErrMsgAlreadyApplied)
	ErrHigherTierPresent = errors.New(ErrMsgHigherTierPresent)
	ErrRequirementNotMet = errors.New(ErrMsgRequirementNotMet)
	ErrHandConflict      = errors.New(ErrMsgHandConflict)

	// Capacity errors
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
)

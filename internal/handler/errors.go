package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Inventory operation error messages
	ErrMsgAddItemFailed      = "Failed to add item"
	ErrMsgRemoveItemFailed   = "Failed to remove item"
	ErrMsgGiveItemFailed     = "Failed to give item"
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgCraftItemFailed    = "Failed to craft item"

	// Equipment operation error messages
	ErrMsgEquipFailed        = "Failed to equip item"
	ErrMsgUnequipFailed      = "Failed to unequip item"
	ErrMsgRepairFailed       = "Failed to repair item"
	ErrMsgDamageFailed       = "Failed to apply durability loss"
	ErrMsgEnchantFailed      = "Failed to apply enchantment"
	ErrMsgGetLoadoutFailed   = "Failed to get loadout"
	ErrMsgGetCharacterFailed = "Failed to get character"
	ErrMsgSaveFailed         = "Failed to save character state"

	// Buff operation error messages
	ErrMsgAddBuffFailed     = "Failed to add buff"
	ErrMsgConsumeBuffFailed = "Failed to consume buffs"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess       = "Item added successfully"
	MsgItemRemovedSuccess     = "Item removed successfully"
	MsgItemTransferredSuccess = "Item transferred successfully"
	MsgItemEquippedSuccess    = "Item equipped successfully"
	MsgItemUnequippedSuccess  = "Item unequipped successfully"
	MsgEnchantAppliedSuccess  = "Enchantment applied successfully"
	MsgBuffAddedSuccess       = "Buff added successfully"
	MsgStateSavedSuccess      = "Character state saved successfully"
	MsgAliasesReloadedSuccess = "Alias configuration reloaded successfully"
)

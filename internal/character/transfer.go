package character

import (
	"context"
	"fmt"

	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/logger"
)

// TransferItem moves a quantity of a stackable item from one character to
// another. All-or-nothing: when the receiver cannot hold the full quantity
// the removal is rolled back and the transfer reports a reason.
func TransferItem(ctx context.Context, from, to *Character, itemID string, qty int) (bool, string, error) {
	if qty <= 0 {
		return false, "", fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}

	// Snapshot the sender's first matching variant before mutating. Only
	// stacks of that exact variant leave the sender, so a rarer variant of
	// the same id never gets drained in its place.
	var match *domain.ItemStack
	for i := 0; i < from.inventory.Size(); i++ {
		s, _ := from.inventory.Slot(i)
		if s != nil && s.ItemID == itemID && !s.IsEquipment() {
			match = &domain.ItemStack{
				ItemID:       s.ItemID,
				MaxStack:     s.MaxStack,
				Rarity:       s.Rarity,
				CraftedStats: s.CraftedStats,
			}
			break
		}
	}
	if match == nil {
		return false, "", fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	if !from.inventory.RemoveMatching(match, qty) {
		return false, fmt.Sprintf("not enough %s to give", itemID), nil
	}
	if !to.inventory.AddItem(itemID, qty, match.MaxStack, match.Rarity, match.CraftedStats) {
		if !from.inventory.AddItem(itemID, qty, match.MaxStack, match.Rarity, match.CraftedStats) {
			// The sender just held this quantity, so the rollback cannot fail
			logger.FromContext(ctx).Error("Transfer rollback failed",
				"from", from.ID, "to", to.ID, "item_id", itemID, "quantity", qty)
			return false, "", fmt.Errorf("transfer of %d %s lost during rollback", qty, itemID)
		}
		return false, "recipient inventory is full", nil
	}
	return true, "", nil
}

// TransferEquipment moves a carried equipment instance from one character
// to another. Soulbound instances refuse to transfer.
func TransferEquipment(ctx context.Context, from, to *Character, instanceID string) (bool, string, error) {
	eq := from.findInventoryInstance(instanceID)
	if eq == nil {
		return false, "", fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
	}
	if from.IsSoulbound(instanceID) {
		return false, eq.Name + " is soulbound and cannot be given away", nil
	}
	if to.inventory.FreeSlots() == 0 {
		return false, "recipient inventory is full", nil
	}

	taken, found := from.inventory.RemoveEquipmentInstance(instanceID)
	if !found {
		return false, "", fmt.Errorf("%w: instance %s", domain.ErrItemNotFound, instanceID)
	}
	if !to.inventory.AddEquipment([]*domain.EquipmentItem{taken}) {
		if !from.inventory.AddEquipment([]*domain.EquipmentItem{taken}) {
			logger.FromContext(ctx).Error("Equipment transfer rollback failed",
				"from", from.ID, "to", to.ID, "instance_id", instanceID)
			return false, "", fmt.Errorf("transfer of instance %s lost during rollback", instanceID)
		}
		return false, "recipient inventory is full", nil
	}
	return true, "", nil
}

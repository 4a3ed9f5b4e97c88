package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/domain"
)

func TestTransferItem(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "iron_ore", 50))

	ok, reason, err := TransferItem(ctx, from, to, "iron_ore", 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)
	assert.Equal(t, 30, from.Inventory().GetItemCount("iron_ore"))
	assert.Equal(t, 20, to.Inventory().GetItemCount("iron_ore"))
}

func TestTransferItemInsufficientQuantity(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "iron_ore", 5))

	ok, reason, err := TransferItem(ctx, from, to, "iron_ore", 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "not enough iron_ore to give", reason)
	assert.Equal(t, 5, from.Inventory().GetItemCount("iron_ore"))
}

func TestTransferItemUnknownItem(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")

	_, _, err := TransferItem(ctx, from, to, "iron_ore", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, _, err = TransferItem(ctx, from, to, "iron_ore", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestTransferItemMixedRaritiesKeepsOtherVariants(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.True(t, from.Inventory().AddItem("iron_ore", 30, 99, domain.RarityCommon, nil))
	require.True(t, from.Inventory().AddItem("iron_ore", 10, 99, domain.RarityRare, nil))

	ok, reason, err := TransferItem(ctx, from, to, "iron_ore", 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)

	// Only the common variant moved; the rare stack stays with the sender
	assert.Equal(t, 20, from.Inventory().GetItemCount("iron_ore"))
	assert.Equal(t, 20, to.Inventory().GetItemCount("iron_ore"))
	rareSlot, _ := from.Inventory().Slot(1)
	require.NotNil(t, rareSlot)
	assert.Equal(t, domain.RarityRare, rareSlot.Rarity)
	assert.Equal(t, 10, rareSlot.Quantity)
	received, _ := to.Inventory().Slot(0)
	require.NotNil(t, received)
	assert.Equal(t, domain.RarityCommon, received.Rarity)

	// Asking for more than the matching variant holds fails even though the
	// id total would cover it
	ok, reason, err = TransferItem(ctx, from, to, "iron_ore", 15)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "not enough iron_ore to give", reason)
}

func TestTransferItemRollsBackWhenRecipientFull(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "iron_ore", 50))

	// No recipient slot can merge or open for ore
	for to.Inventory().FreeSlots() > 0 {
		require.NoError(t, to.AddItemByID(ctx, "leather_helmet", 1))
	}

	ok, reason, err := TransferItem(ctx, from, to, "iron_ore", 20)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "recipient inventory is full", reason)
	assert.Equal(t, 50, from.Inventory().GetItemCount("iron_ore"))
	assert.Equal(t, 0, to.Inventory().GetItemCount("iron_ore"))
}

func TestTransferEquipment(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "iron_sword", 1))
	instanceID := firstInstanceID(t, from, "iron_sword")

	ok, reason, err := TransferEquipment(ctx, from, to, instanceID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reason)
	assert.Equal(t, 0, from.Inventory().GetItemCount("iron_sword"))
	assert.Equal(t, instanceID, firstInstanceID(t, to, "iron_sword"))
}

func TestTransferEquipmentSoulboundRefused(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "bound_blade", 1))

	ok, reason, err := TransferEquipment(ctx, from, to, firstInstanceID(t, from, "bound_blade"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Bound Blade is soulbound and cannot be given away", reason)
	assert.Equal(t, 1, from.Inventory().GetItemCount("bound_blade"))
}

func TestTransferEquipmentRecipientFull(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")
	require.NoError(t, from.AddItemByID(ctx, "iron_sword", 1))
	for to.Inventory().FreeSlots() > 0 {
		require.NoError(t, to.AddItemByID(ctx, "leather_helmet", 1))
	}

	ok, reason, err := TransferEquipment(ctx, from, to, firstInstanceID(t, from, "iron_sword"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "recipient inventory is full", reason)
	assert.Equal(t, 1, from.Inventory().GetItemCount("iron_sword"))
}

func TestTransferEquipmentUnknownInstance(t *testing.T) {
	ctx := context.Background()
	from, _ := newTestCharacter(t, "ada")
	to, _ := newTestCharacter(t, "brin")

	_, _, err := TransferEquipment(ctx, from, to, "no-such-instance")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

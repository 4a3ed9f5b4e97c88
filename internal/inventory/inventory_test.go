package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwake/emberwake/internal/domain"
)

func TestNewDefaultsSize(t *testing.T) {
	assert.Equal(t, DefaultSize, New(0).Size())
	assert.Equal(t, DefaultSize, New(-3).Size())
	assert.Equal(t, 5, New(5).Size())
}

func TestAddItemStacksAndOverflows(t *testing.T) {
	inv := New(5)

	require.True(t, inv.AddItem("iron_ore", 150, 99, domain.RarityCommon, nil))
	assert.Equal(t, 150, inv.GetItemCount("iron_ore"))
	assert.Equal(t, 3, inv.FreeSlots())

	first, err := inv.Slot(0)
	require.NoError(t, err)
	assert.Equal(t, 99, first.Quantity)
	second, err := inv.Slot(1)
	require.NoError(t, err)
	assert.Equal(t, 51, second.Quantity)
}

func TestAddItemTopsUpBeforeOpeningSlots(t *testing.T) {
	inv := New(5)
	require.True(t, inv.AddItem("iron_ore", 90, 99, domain.RarityCommon, nil))
	require.True(t, inv.AddItem("iron_ore", 9, 99, domain.RarityCommon, nil))

	assert.Equal(t, 4, inv.FreeSlots())
	first, _ := inv.Slot(0)
	assert.Equal(t, 99, first.Quantity)
}

func TestAddItemAllOrNothing(t *testing.T) {
	inv := New(2)
	require.True(t, inv.AddItem("iron_ore", 99, 99, domain.RarityCommon, nil))

	// 99 + 99 capacity remains in one free slot plus zero top-up space;
	// asking for more than fits must leave the inventory untouched.
	assert.False(t, inv.AddItem("iron_ore", 100, 99, domain.RarityCommon, nil))
	assert.Equal(t, 99, inv.GetItemCount("iron_ore"))
	assert.Equal(t, 1, inv.FreeSlots())
}

func TestAddItemRejectsInvalidQuantities(t *testing.T) {
	inv := New(3)
	assert.False(t, inv.AddItem("iron_ore", 0, 99, domain.RarityCommon, nil))
	assert.False(t, inv.AddItem("iron_ore", -1, 99, domain.RarityCommon, nil))
	assert.False(t, inv.AddItem("iron_ore", 1, 0, domain.RarityCommon, nil))
}

func TestDifferentRaritiesKeepSeparateStacks(t *testing.T) {
	inv := New(3)
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityCommon, nil))
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityRare, nil))

	assert.Equal(t, 20, inv.GetItemCount("iron_ore"))
	assert.Equal(t, 1, inv.FreeSlots())
}

func TestAddEquipmentOnePerSlot(t *testing.T) {
	inv := New(3)
	swords := []*domain.EquipmentItem{
		{ID: "iron_sword", InstanceID: "a", Rarity: domain.RarityCommon},
		{ID: "iron_sword", InstanceID: "b", Rarity: domain.RarityCommon},
	}

	require.True(t, inv.AddEquipment(swords))
	assert.Equal(t, 2, inv.GetItemCount("iron_sword"))
	assert.Equal(t, 1, inv.FreeSlots())

	// Equipment never merges even with identical ids
	s0, _ := inv.Slot(0)
	s1, _ := inv.Slot(1)
	assert.Equal(t, 1, s0.Quantity)
	assert.Equal(t, 1, s1.Quantity)
	assert.NotEqual(t, s0.Equipment.InstanceID, s1.Equipment.InstanceID)
}

func TestAddEquipmentAllOrNothing(t *testing.T) {
	inv := New(2)
	require.True(t, inv.AddItem("iron_ore", 5, 99, domain.RarityCommon, nil))

	instances := []*domain.EquipmentItem{
		{ID: "iron_sword", InstanceID: "a"},
		{ID: "iron_sword", InstanceID: "b"},
	}
	assert.False(t, inv.AddEquipment(instances))
	assert.Equal(t, 0, inv.GetItemCount("iron_sword"))
	assert.Equal(t, 1, inv.FreeSlots())

	assert.False(t, inv.AddEquipment(nil))
}

func TestRemoveItemDepletesInSlotOrder(t *testing.T) {
	inv := New(4)
	require.True(t, inv.AddItem("iron_ore", 120, 99, domain.RarityCommon, nil))

	require.True(t, inv.RemoveItem("iron_ore", 100))
	assert.Equal(t, 20, inv.GetItemCount("iron_ore"))

	// First stack (99) fully consumed, second reduced from 21 to 20
	s0, _ := inv.Slot(0)
	assert.Nil(t, s0)
	s1, _ := inv.Slot(1)
	require.NotNil(t, s1)
	assert.Equal(t, 20, s1.Quantity)
}

func TestRemoveItemAllOrNothing(t *testing.T) {
	inv := New(3)
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityCommon, nil))

	assert.False(t, inv.RemoveItem("iron_ore", 11))
	assert.Equal(t, 10, inv.GetItemCount("iron_ore"))

	assert.False(t, inv.RemoveItem("oak_log", 1))
	assert.False(t, inv.RemoveItem("iron_ore", 0))
}

func TestRemoveItemClearsCountEntry(t *testing.T) {
	inv := New(3)
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityCommon, nil))
	require.True(t, inv.RemoveItem("iron_ore", 10))

	assert.Equal(t, 0, inv.GetItemCount("iron_ore"))
	assert.Equal(t, 3, inv.FreeSlots())
}

func TestRemoveMatchingLeavesOtherVariantsAlone(t *testing.T) {
	inv := New(4)
	require.True(t, inv.AddItem("iron_ore", 30, 99, domain.RarityCommon, nil))
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityRare, nil))

	common := &domain.ItemStack{ItemID: "iron_ore", MaxStack: 99, Rarity: domain.RarityCommon}
	require.True(t, inv.RemoveMatching(common, 20))

	assert.Equal(t, 20, inv.GetItemCount("iron_ore"))
	s0, _ := inv.Slot(0)
	require.NotNil(t, s0)
	assert.Equal(t, domain.RarityCommon, s0.Rarity)
	assert.Equal(t, 10, s0.Quantity)
	s1, _ := inv.Slot(1)
	require.NotNil(t, s1)
	assert.Equal(t, domain.RarityRare, s1.Rarity)
	assert.Equal(t, 10, s1.Quantity)
}

func TestRemoveMatchingAllOrNothing(t *testing.T) {
	inv := New(4)
	require.True(t, inv.AddItem("iron_ore", 30, 99, domain.RarityCommon, nil))
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityRare, nil))

	// 40 units held overall, but only 30 of the common variant
	common := &domain.ItemStack{ItemID: "iron_ore", MaxStack: 99, Rarity: domain.RarityCommon}
	assert.False(t, inv.RemoveMatching(common, 35))
	assert.Equal(t, 40, inv.GetItemCount("iron_ore"))

	assert.False(t, inv.RemoveMatching(nil, 1))
	assert.False(t, inv.RemoveMatching(common, 0))
}

func TestRemoveEquipmentInstance(t *testing.T) {
	inv := New(3)
	require.True(t, inv.AddEquipment([]*domain.EquipmentItem{
		{ID: "iron_sword", InstanceID: "a"},
		{ID: "iron_sword", InstanceID: "b"},
	}))

	eq, ok := inv.RemoveEquipmentInstance("b")
	require.True(t, ok)
	assert.Equal(t, "b", eq.InstanceID)
	assert.Equal(t, 1, inv.GetItemCount("iron_sword"))

	_, ok = inv.RemoveEquipmentInstance("b")
	assert.False(t, ok)

	_, ok = inv.RemoveEquipmentInstance("missing")
	assert.False(t, ok)
}

func TestSlotBounds(t *testing.T) {
	inv := New(3)

	_, err := inv.Slot(-1)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfRange)
	_, err = inv.Slot(3)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfRange)

	err = inv.SetSlot(5, nil)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfRange)
	err = inv.Swap(0, 7)
	assert.ErrorIs(t, err, domain.ErrSlotOutOfRange)
}

func TestSetSlotKeepsCountsConsistent(t *testing.T) {
	inv := New(3)
	require.NoError(t, inv.SetSlot(1, &domain.ItemStack{
		ItemID: "iron_ore", Quantity: 40, MaxStack: 99, Rarity: domain.RarityCommon,
	}))
	assert.Equal(t, 40, inv.GetItemCount("iron_ore"))

	require.NoError(t, inv.SetSlot(1, &domain.ItemStack{
		ItemID: "oak_log", Quantity: 5, MaxStack: 99, Rarity: domain.RarityCommon,
	}))
	assert.Equal(t, 0, inv.GetItemCount("iron_ore"))
	assert.Equal(t, 5, inv.GetItemCount("oak_log"))

	require.NoError(t, inv.SetSlot(1, nil))
	assert.Equal(t, 0, inv.GetItemCount("oak_log"))
	assert.Equal(t, 3, inv.FreeSlots())
}

func TestSwap(t *testing.T) {
	inv := New(3)
	require.True(t, inv.AddItem("iron_ore", 10, 99, domain.RarityCommon, nil))

	require.NoError(t, inv.Swap(0, 2))
	s0, _ := inv.Slot(0)
	assert.Nil(t, s0)
	s2, _ := inv.Slot(2)
	require.NotNil(t, s2)
	assert.Equal(t, "iron_ore", s2.ItemID)
	assert.Equal(t, 10, inv.GetItemCount("iron_ore"))
}

func TestSaveDataRoundTrip(t *testing.T) {
	inv := New(6)
	require.True(t, inv.AddItem("iron_ore", 120, 99, domain.RarityCommon, nil))
	require.True(t, inv.AddEquipment([]*domain.EquipmentItem{{
		ID: "iron_sword", InstanceID: "a", Name: "Iron Sword",
		Slot: domain.SlotMainHand, HandType: domain.HandOneHanded,
		DamageMin: 10, DamageMax: 20,
		DurabilityCurrent: 80, DurabilityMax: 100,
		Rarity: domain.RarityCommon,
	}}))
	require.NoError(t, inv.Swap(2, 4))

	restored, err := FromSaveData(inv.ToSaveData())
	require.NoError(t, err)

	assert.Equal(t, inv.Size(), restored.Size())
	assert.Equal(t, inv.FreeSlots(), restored.FreeSlots())
	assert.Equal(t, 120, restored.GetItemCount("iron_ore"))
	assert.Equal(t, 1, restored.GetItemCount("iron_sword"))

	s4, err := restored.Slot(4)
	require.NoError(t, err)
	require.NotNil(t, s4)
	require.NotNil(t, s4.Equipment)
	assert.Equal(t, "a", s4.Equipment.InstanceID)
	assert.Equal(t, 80, s4.Equipment.DurabilityCurrent)
}

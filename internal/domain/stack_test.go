package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackSpaceLeft(t *testing.T) {
	s := &ItemStack{ItemID: "iron_ore", Quantity: 30, MaxStack: 99}
	assert.Equal(t, 69, s.SpaceLeft())

	full := &ItemStack{ItemID: "iron_ore", Quantity: 99, MaxStack: 99}
	assert.Equal(t, 0, full.SpaceLeft())

	eq := &ItemStack{ItemID: "iron_sword", Quantity: 1, MaxStack: 1, Equipment: &EquipmentItem{ID: "iron_sword"}}
	assert.Equal(t, 0, eq.SpaceLeft())
}

func TestCanStackWith(t *testing.T) {
	ore := func() *ItemStack {
		return &ItemStack{ItemID: "iron_ore", Quantity: 10, MaxStack: 99, Rarity: RarityCommon}
	}

	t.Run("same id and rarity merge", func(t *testing.T) {
		assert.True(t, ore().CanStackWith(ore()))
	})

	t.Run("nil other", func(t *testing.T) {
		assert.False(t, ore().CanStackWith(nil))
	})

	t.Run("different ids", func(t *testing.T) {
		other := ore()
		other.ItemID = "oak_log"
		assert.False(t, ore().CanStackWith(other))
	})

	t.Run("different rarities", func(t *testing.T) {
		other := ore()
		other.Rarity = RarityRare
		assert.False(t, ore().CanStackWith(other))
	})

	t.Run("equipment never merges", func(t *testing.T) {
		eq := &ItemStack{ItemID: "iron_ore", Quantity: 1, MaxStack: 1, Equipment: &EquipmentItem{ID: "iron_ore"}}
		assert.False(t, ore().CanStackWith(eq))
		assert.False(t, eq.CanStackWith(ore()))
	})

	t.Run("crafted modifiers must match", func(t *testing.T) {
		a := ore()
		a.CraftedStats = &CraftedStats{Modifiers: map[string]float64{"yield": 0.1}}
		b := ore()
		assert.False(t, a.CanStackWith(b))

		b.CraftedStats = &CraftedStats{Modifiers: map[string]float64{"yield": 0.1}}
		assert.True(t, a.CanStackWith(b))
	})

	t.Run("nil crafted stats equal empty", func(t *testing.T) {
		a := ore()
		b := ore()
		b.CraftedStats = &CraftedStats{}
		assert.True(t, a.CanStackWith(b))
	})
}

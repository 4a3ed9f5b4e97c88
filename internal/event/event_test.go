package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsVersionAndTime(t *testing.T) {
	ev := New(EquipmentEquipped, EquipPayloadV1{CharacterID: "ada"})

	assert.Equal(t, EventSchemaVersion, ev.Version)
	assert.Equal(t, EquipmentEquipped, ev.Type)
	assert.NotZero(t, ev.Timestamp)
}

func TestMemoryBusDeliversToSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	var received []Event
	bus.Subscribe(BuffAdded, func(_ context.Context, ev Event) error {
		received = append(received, ev)
		return nil
	})
	bus.Subscribe(BuffAdded, func(_ context.Context, ev Event) error {
		received = append(received, ev)
		return nil
	})

	err := bus.Publish(context.Background(), New(BuffAdded, BuffPayloadV1{BuffID: "strength_elixir"}))
	require.NoError(t, err)
	require.Len(t, received, 2)

	payload, ok := received[0].Payload.(BuffPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "strength_elixir", payload.BuffID)
}

func TestMemoryBusIgnoresUnsubscribedTypes(t *testing.T) {
	bus := NewMemoryBus()
	var calls int
	bus.Subscribe(BuffAdded, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), New(EquipmentRepaired, RepairPayloadV1{}))
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestMemoryBusAggregatesHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	var delivered int
	bus.Subscribe(ItemCreated, func(context.Context, Event) error {
		return errors.New("subscriber down")
	})
	bus.Subscribe(ItemCreated, func(context.Context, Event) error {
		delivered++
		return nil
	})

	err := bus.Publish(context.Background(), New(ItemCreated, ItemCreatedPayloadV1{ItemID: "iron_ore"}))
	assert.Error(t, err)
	// A failing handler never blocks the others
	assert.Equal(t, 1, delivered)
}

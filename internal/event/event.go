package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emberwake/emberwake/internal/metrics"
)

// Type represents the type of an event
type Type string

// Event represents a fire-and-forget notification out of the item engine.
// UI, audio, and stat-tracking consumers subscribe; the core never depends
// on a subscriber existing.
type Event struct {
	Version   string `json:"version"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// Event types raised by the item engine
const (
	ItemCreated Type = "item.created"

	EquipmentEquipped   Type = "equipment.equipped"
	EquipmentUnequipped Type = "equipment.unequipped"
	EquipmentRepaired   Type = "equipment.repaired"

	EnchantmentApplied Type = "enchantment.applied"
	EnchantmentRemoved Type = "enchantment.removed"

	BuffAdded    Type = "buff.added"
	BuffExpired  Type = "buff.expired"
	BuffConsumed Type = "buff.consumed"
)

// Typed event payloads

// ItemCreatedPayloadV1 is the typed payload for item creation events
type ItemCreatedPayloadV1 struct {
	ItemID   string `json:"item_id"`
	Category string `json:"category"`
	Crafted  bool   `json:"crafted,omitempty"`
}

// EquipPayloadV1 is the typed payload for equip/unequip events
type EquipPayloadV1 struct {
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
	InstanceID  string `json:"instance_id"`
	Slot        string `json:"slot"`
}

// RepairPayloadV1 is the typed payload for repair events
type RepairPayloadV1 struct {
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
	InstanceID  string `json:"instance_id"`
	Restored    int    `json:"restored"`
}

// EnchantmentPayloadV1 is the typed payload for enchantment events
type EnchantmentPayloadV1 struct {
	CharacterID   string `json:"character_id"`
	ItemID        string `json:"item_id"`
	InstanceID    string `json:"instance_id"`
	EnchantmentID string `json:"enchantment_id"`
}

// BuffPayloadV1 is the typed payload for buff lifecycle events
type BuffPayloadV1 struct {
	CharacterID string  `json:"character_id"`
	BuffID      string  `json:"buff_id"`
	EffectType  string  `json:"effect_type"`
	Category    string  `json:"category"`
	Bonus       float64 `json:"bonus"`
}

// New builds an event with the current schema version and timestamp
func New(eventType Type, payload any) Event {
	return Event{
		Version:   EventSchemaVersion,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// on the caller's goroutine; handler errors are aggregated, never fatal to
// the publisher.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

package repository

import (
	"context"
	"time"
)

// CharacterStateRecord is a persisted character item-state snapshot
type CharacterStateRecord struct {
	CharacterID string
	State       map[string]any
	UpdatedAt   time.Time
}

// CharacterState stores serialized character item state keyed by character
// id. Save is an upsert; implementations persist the state map as a single
// document.
type CharacterState interface {
	// Save upserts the full state snapshot for a character
	Save(ctx context.Context, characterID string, state map[string]any) error

	// SaveAll upserts many snapshots in a single transaction, all-or-nothing
	SaveAll(ctx context.Context, states map[string]map[string]any) error

	// Load returns the persisted snapshot, domain.ErrCharacterNotFound when
	// the character has never been saved
	Load(ctx context.Context, characterID string) (*CharacterStateRecord, error)

	// Delete removes a character's snapshot. Deleting an unknown character
	// is not an error.
	Delete(ctx context.Context, characterID string) error

	// List returns the ids of all persisted characters
	List(ctx context.Context) ([]string, error)
}

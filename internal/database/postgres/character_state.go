package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/repository"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// CharacterStateRepository implements repository.CharacterState on top of a
// single JSONB document per character
type CharacterStateRepository struct {
	db *pgxpool.Pool
}

// NewCharacterStateRepository creates a new CharacterStateRepository
func NewCharacterStateRepository(db *pgxpool.Pool) *CharacterStateRepository {
	return &CharacterStateRepository{db: db}
}

// Save upserts the full state snapshot for a character
func (r *CharacterStateRepository) Save(ctx context.Context, characterID string, state map[string]any) error {
	if characterID == "" {
		return fmt.Errorf("%w: empty character id", domain.ErrCharacterNotFound)
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode character state: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO character_state (character_id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (character_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
		characterID, payload)
	if err != nil {
		return fmt.Errorf("failed to save character state: %w", err)
	}
	return nil
}

// SaveAll upserts many snapshots in a single transaction. Used by the
// periodic world save so a mid-batch failure never leaves a partial save.
func (r *CharacterStateRepository) SaveAll(ctx context.Context, states map[string]map[string]any) error {
	if len(states) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin state save transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	for characterID, state := range states {
		payload, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to encode state for %s: %w", characterID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO character_state (character_id, state, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (character_id)
			DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()`,
			characterID, payload)
		if err != nil {
			return fmt.Errorf("failed to save state for %s: %w", characterID, err)
		}
	}

	return tx.Commit(ctx)
}

// Load returns the persisted snapshot for a character
func (r *CharacterStateRepository) Load(ctx context.Context, characterID string) (*repository.CharacterStateRecord, error) {
	record := &repository.CharacterStateRecord{CharacterID: characterID}

	var payload []byte
	err := r.db.QueryRow(ctx, `
		SELECT state, updated_at
		FROM character_state
		WHERE character_id = $1`,
		characterID).Scan(&payload, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, characterID)
		}
		return nil, fmt.Errorf("failed to load character state: %w", err)
	}

	if err := json.Unmarshal(payload, &record.State); err != nil {
		return nil, fmt.Errorf("failed to decode character state: %w", err)
	}
	return record, nil
}

// Delete removes a character's snapshot
func (r *CharacterStateRepository) Delete(ctx context.Context, characterID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM character_state WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("failed to delete character state: %w", err)
	}
	return nil
}

// List returns the ids of all persisted characters
func (r *CharacterStateRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT character_id FROM character_state ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list character states: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan character id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate character states: %w", err)
	}
	return ids, nil
}

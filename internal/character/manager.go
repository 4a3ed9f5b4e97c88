package character

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/event"
	"github.com/emberwake/emberwake/internal/item"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/repository"
)

// Manager owns the live character set. Characters load lazily from the
// state repository and stay resident until evicted; the world save tick
// flushes all dirty state in one transaction.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*managedCharacter

	factory *item.Factory
	catalog catalog.Catalog
	bus     event.Bus
	repo    repository.CharacterState
}

type managedCharacter struct {
	char  *Character
	stats *Stats
}

// NewManager creates a character manager. repo may be nil for ephemeral
// worlds; characters then live only in memory.
func NewManager(factory *item.Factory, cat catalog.Catalog, bus event.Bus, repo repository.CharacterState) *Manager {
	return &Manager{
		entries: make(map[string]*managedCharacter),
		factory: factory,
		catalog: cat,
		bus:     bus,
		repo:    repo,
	}
}

// Get returns the live character, loading persisted state on first access.
// Unknown characters return domain.ErrCharacterNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Character, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if ok {
		return entry.char, nil
	}

	if m.repo == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, id)
	}

	record, err := m.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.entries[id]; ok {
		// Lost the race to another loader
		return entry.char, nil
	}

	entry = m.newEntry(id)
	if err := entry.char.LoadFromSaveData(record.State); err != nil {
		return nil, err
	}
	m.entries[id] = entry

	logger.FromContext(ctx).Info("Character loaded", "character_id", id)
	return entry.char, nil
}

// GetOrCreate returns the live character, loading or creating as needed
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Character, error) {
	char, err := m.Get(ctx, id)
	if err == nil {
		return char, nil
	}
	if !errors.Is(err, domain.ErrCharacterNotFound) {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.entries[id]; ok {
		return entry.char, nil
	}
	entry := m.newEntry(id)
	m.entries[id] = entry

	logger.FromContext(ctx).Info("Character created", "character_id", id)
	return entry.char, nil
}

// StatsOf returns the mutable stat sheet for a live character, nil when the
// character is not resident
func (m *Manager) StatsOf(id string) *Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[id]; ok {
		return entry.stats
	}
	return nil
}

// Save persists one character's state
func (m *Manager) Save(ctx context.Context, id string) error {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, id)
	}
	if m.repo == nil {
		return nil
	}
	return m.repo.Save(ctx, id, entry.char.ToSaveData())
}

// SaveAll persists every resident character in one transaction
func (m *Manager) SaveAll(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	m.mu.RLock()
	states := make(map[string]map[string]any, len(m.entries))
	for id, entry := range m.entries {
		states[id] = entry.char.ToSaveData()
	}
	m.mu.RUnlock()

	if err := m.repo.SaveAll(ctx, states); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("World state saved", "characters", len(states))
	return nil
}

// Update advances buff time for every resident character
func (m *Manager) Update(dt float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		entry.char.Update(dt)
	}
}

// Evict drops a character from memory after persisting it
func (m *Manager) Evict(ctx context.Context, id string) error {
	if err := m.Save(ctx, id); err != nil && !errors.Is(err, domain.ErrCharacterNotFound) {
		return err
	}
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

// ResidentIDs returns the ids of all in-memory characters, sorted
func (m *Manager) ResidentIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) newEntry(id string) *managedCharacter {
	stats := NewStats()
	return &managedCharacter{
		char:  New(id, m.factory, m.catalog, stats, m.bus),
		stats: stats,
	}
}

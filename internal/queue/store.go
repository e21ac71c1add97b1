package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vmunix/vodarr/internal/kv"
)

// queueKey is the persistence key for the whole-collection snapshot.
const queueKey = "queue:items"

// interruptedMessage marks items whose transfer cannot survive a restart.
const interruptedMessage = "interrupted: import was in progress when the service stopped"

// Store owns the import item collection. Every mutation goes through
// Update, which serializes concurrent writers and re-persists the full
// snapshot synchronously, so the latest state survives a crash at any
// point between stages.
type Store struct {
	kv  *kv.Store
	log *slog.Logger

	mu    sync.Mutex
	items map[string]*ImportItem
}

// NewStore creates an empty store backed by the key-value layer.
func NewStore(kvStore *kv.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		kv:    kvStore,
		log:   log,
		items: make(map[string]*ImportItem),
	}
}

// Load reads the persisted snapshot and reclassifies items that cannot be
// resumed. Items mid-poll keep their stage (the orchestrator re-registers
// their timers); items in any other non-terminal stage move to error since
// partial transfers cannot be trusted after a restart.
func (s *Store) Load() error {
	raw, ok, err := s.kv.Load(queueKey)
	if err != nil {
		return fmt.Errorf("load queue: %w", err)
	}
	if !ok {
		return nil
	}

	var items []*ImportItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("decode queue: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	interrupted := 0
	for _, item := range items {
		if !item.Stage.IsTerminal() && item.Stage != StagePolling {
			item.Stage = StageError
			item.ErrorMessage = interruptedMessage
			item.StatusText = "Interrupted"
			item.UpdatedAt = time.Now()
			interrupted++
		}
		s.items[item.ID] = item
	}

	if interrupted > 0 {
		s.log.Warn("reclassified interrupted imports", "count", interrupted)
		if err := s.persistLocked(); err != nil {
			return err
		}
	}

	s.log.Info("queue loaded", "items", len(s.items))
	return nil
}

// Add inserts a new item and persists the collection.
func (s *Store) Add(item *ImportItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return s.persistLocked()
}

// Get returns a copy of the item, or ErrItemNotFound.
func (s *Store) Get(id string) (*ImportItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

// List returns copies of all items ordered by creation time.
func (s *Store) List() []*ImportItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*ImportItem, 0, len(s.items))
	for _, item := range s.items {
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

// Update applies fn to the item under the store lock and persists the
// whole collection before returning. fn always sees the latest state, so
// concurrent in-flight items never clobber each other's writes. The
// returned item is a copy.
func (s *Store) Update(id string, fn func(*ImportItem)) (*ImportItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}

	fn(item)
	item.UpdatedAt = time.Now()

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	copied := *item
	return &copied, nil
}

// Remove deletes an item and persists the collection. Removing an unknown
// id returns ErrItemNotFound.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(s.items, id)
	return s.persistLocked()
}

// ClearDone removes all items in a terminal stage and returns how many
// were removed.
func (s *Store) ClearDone() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, item := range s.items {
		if item.Stage.IsTerminal() {
			delete(s.items, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistLocked()
}

func (s *Store) persistLocked() error {
	items := make([]*ImportItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	if err := s.kv.Save(queueKey, string(data)); err != nil {
		return fmt.Errorf("persist queue: %w", err)
	}
	return nil
}

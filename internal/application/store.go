package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// StorageKey is the key the deck state is persisted under
const StorageKey = "card-storage"

// DeckStore is the process-wide deck state: cards, grid dimensions and the derived
// card count. Every mutation is persisted and broadcast to subscribers.
// A store is unusable until Hydrate has run.
type DeckStore struct {
	mu        sync.RWMutex
	storage   ports.StateStorage
	key       string
	logger    *slog.Logger
	deck      domain.Deck
	hydrated  bool
	observers map[int]func(domain.Deck)
	nextObsID int
}

// StoreOption configures a DeckStore
type StoreOption func(*DeckStore)

// WithLogger sets the logger used by the store
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *DeckStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorageKey overrides the key the state is persisted under
func WithStorageKey(key string) StoreOption {
	return func(s *DeckStore) {
		if key != "" {
			s.key = key
		}
	}
}

// NewDeckStore creates a store backed by storage. Until Hydrate is called, reads
// return the default deck and mutators fail with ErrNotHydrated.
func NewDeckStore(storage ports.StateStorage, opts ...StoreOption) *DeckStore {
	s := &DeckStore{
		storage:   storage,
		key:       StorageKey,
		logger:    slog.New(slog.DiscardHandler),
		deck:      domain.DefaultDeck(),
		observers: make(map[int]func(domain.Deck)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// persistedState mirrors the stored document. Absent keys keep their defaults.
type persistedState struct {
	Rows       *int           `json:"rows"`
	Cols       *int           `json:"cols"`
	TotalCards *int           `json:"totalCards"`
	Cards      *[]domain.Card `json:"cards"`
}

// Hydrate restores the persisted state, falling back to the default deck on first run.
// It can be called again to pick up changes written by another process. Loading holds
// the write lock, so a concurrent mutation lands either before the load or after it.
func (s *DeckStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	deck, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.deck = deck
	s.hydrated = true
	snap, observers := s.broadcastLocked()
	s.mu.Unlock()

	s.logger.Debug("deck hydrated",
		slog.Int("rows", deck.Rows),
		slog.Int("cols", deck.Cols),
		slog.Int("cards", len(deck.Cards)))
	notify(observers, snap)
	return nil
}

func (s *DeckStore) loadLocked(ctx context.Context) (domain.Deck, error) {
	deck := domain.DefaultDeck()
	data, err := s.storage.Load(ctx, s.key)

	switch {
	case errors.Is(err, ports.ErrStateNotFound):
		s.logger.Debug("no persisted deck, using defaults", slog.String("key", s.key))
	case err != nil:
		return deck, fmt.Errorf("failed to load deck state: %w", err)
	default:
		var st persistedState
		if err := json.Unmarshal(data, &st); err != nil {
			return deck, fmt.Errorf("failed to decode deck state: %w", err)
		}
		if st.Rows != nil && *st.Rows > 0 {
			deck.Rows = *st.Rows
		}
		if st.Cols != nil && *st.Cols > 0 {
			deck.Cols = *st.Cols
		}
		if st.Cards != nil {
			deck.Cards = slices.Clone(*st.Cards)
		}
	}
	deck.TotalCards = deck.Rows * deck.Cols
	return deck, nil
}

// Hydrated reports whether Hydrate has completed
func (s *DeckStore) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Snapshot returns a copy of the current deck
func (s *DeckStore) Snapshot() domain.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Clone()
}

// Cards returns a copy of the card collection
func (s *DeckStore) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deck.Cards)
}

// Card looks a card up by ID
func (s *DeckStore) Card(id int) (domain.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Find(id)
}

// Rows returns the number of grid rows
func (s *DeckStore) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Rows
}

// Cols returns the number of grid columns
func (s *DeckStore) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Cols
}

// TotalCards returns rows*cols
func (s *DeckStore) TotalCards() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.TotalCards
}

// SetCards replaces the whole card collection. No validation is performed.
func (s *DeckStore) SetCards(ctx context.Context, cards []domain.Card) error {
	return s.mutate(ctx, "set_cards", func(d *domain.Deck) bool {
		d.Cards = slices.Clone(cards)
		return true
	})
}

// UpdateCard replaces the card with the same ID. It is a no-op when the ID is absent.
func (s *DeckStore) UpdateCard(ctx context.Context, card domain.Card) error {
	return s.mutate(ctx, "update_card", func(d *domain.Deck) bool {
		i := d.IndexOf(card.ID)
		if i < 0 {
			return false
		}
		d.Cards = slices.Clone(d.Cards)
		d.Cards[i] = card
		return true
	})
}

// PutCard replaces the card with the same ID or inserts it keeping ID order
func (s *DeckStore) PutCard(ctx context.Context, card domain.Card) error {
	return s.mutate(ctx, "put_card", func(d *domain.Deck) bool {
		cards := slices.Clone(d.Cards)
		if i := d.IndexOf(card.ID); i >= 0 {
			cards[i] = card
		} else {
			pos, _ := slices.BinarySearchFunc(cards, card.ID, func(c domain.Card, id int) int {
				return c.ID - id
			})
			cards = slices.Insert(cards, pos, card)
		}
		d.Cards = cards
		return true
	})
}

// SetRows sets the row count and recomputes TotalCards. The card collection is not resized.
func (s *DeckStore) SetRows(ctx context.Context, rows int) error {
	return s.mutate(ctx, "set_rows", func(d *domain.Deck) bool {
		d.Rows = rows
		d.TotalCards = d.Rows * d.Cols
		return true
	})
}

// SetCols sets the column count and recomputes TotalCards. The card collection is not resized.
func (s *DeckStore) SetCols(ctx context.Context, cols int) error {
	return s.mutate(ctx, "set_cols", func(d *domain.Deck) bool {
		d.Cols = cols
		d.TotalCards = d.Rows * d.Cols
		return true
	})
}

// Replacement describes a whole-deck replacement
type Replacement struct {
	Rows  int
	Cols  int
	Cards []domain.Card
	// KeepCards leaves the current collection untouched and only applies dimensions
	KeepCards bool
}

// Replace applies dimensions and cards as one logical operation
func (s *DeckStore) Replace(ctx context.Context, r Replacement) error {
	return s.mutate(ctx, "replace", func(d *domain.Deck) bool {
		d.Rows = r.Rows
		d.Cols = r.Cols
		d.TotalCards = d.Rows * d.Cols
		if !r.KeepCards {
			d.Cards = slices.Clone(r.Cards)
		}
		return true
	})
}

// Reset replaces the collection with TotalCards empty cards numbered from 0
func (s *DeckStore) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(d *domain.Deck) bool {
		d.Cards = domain.NewCards(d.TotalCards)
		return true
	})
}

// Subscribe registers fn to be called with a snapshot after every change.
// The returned function removes the subscription.
func (s *DeckStore) Subscribe(fn func(domain.Deck)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// mutate applies fn under the write lock, persists and notifies subscribers.
// The in-memory change is kept even when persisting fails; the error is returned.
func (s *DeckStore) mutate(ctx context.Context, op string, fn func(d *domain.Deck) bool) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	if !fn(&s.deck) {
		s.mu.Unlock()
		s.logger.Debug("store: no-op", slog.String("op", op))
		return nil
	}

	err := s.persistLocked(ctx)
	snap, observers := s.broadcastLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("store: persist failed", slog.String("op", op), slog.String("error", err.Error()))
	} else {
		s.logger.Debug("store: mutated", slog.String("op", op), slog.Int("total_cards", snap.TotalCards))
	}
	notify(observers, snap)
	return err
}

func (s *DeckStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.deck)
	if err != nil {
		return fmt.Errorf("failed to encode deck state: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist deck state: %w", err)
	}
	return nil
}

func (s *DeckStore) broadcastLocked() (domain.Deck, []func(domain.Deck)) {
	observers := make([]func(domain.Deck), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	return s.deck.Clone(), observers
}

func notify(observers []func(domain.Deck), snap domain.Deck) {
	for _, fn := range observers {
		fn(snap.Clone())
	}
}

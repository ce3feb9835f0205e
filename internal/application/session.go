package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// Action is an editor operation that may have to wait for confirmation
type Action int

const (
	ActionNone Action = iota
	ActionFlip
	ActionClear
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionFlip:
		return "flip"
	case ActionClear:
		return "clear"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// Confirmation prompts and notifications shown to the user
const (
	MsgUnsavedChanges = "Se perderán los cambios no guardados."
	MsgClearSide      = "Se perderá el contenido del lado actual."
	MsgCardSaved      = "Tarjeta guardada"
	MsgSideCleared    = "Lado limpiado"
)

// CardWriter is the part of the deck store an edit session needs
type CardWriter interface {
	Card(id int) (domain.Card, bool)
	PutCard(ctx context.Context, card domain.Card) error
}

// Session is one card editor session. It tracks the text of the side being edited,
// whether it differs from the snapshot taken when that side was entered, and a single
// slot for an action waiting for confirmation.
type Session struct {
	id          string
	cardID      int
	card        domain.Card
	missing     bool
	orientation domain.Orientation
	original    string
	current     string
	dirty       bool
	pending     Action
	closed      bool

	store    CardWriter
	notifier ports.Notifier
}

// NewSession opens a session on cardID. When the card does not exist the session
// starts empty and Save attaches a new card with that ID.
func NewSession(store CardWriter, notifier ports.Notifier, cardID int, orientation domain.Orientation) *Session {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	card, ok := store.Card(cardID)
	if !ok {
		card = domain.Card{ID: cardID}
	}

	text := card.Side(orientation)
	return &Session{
		id:          uuid.NewString(),
		cardID:      cardID,
		card:        card,
		missing:     !ok,
		orientation: orientation,
		original:    text,
		current:     text,
		store:       store,
		notifier:    notifier,
	}
}

// ID uniquely identifies this session
func (s *Session) ID() string { return s.id }

// CardID is the identifier of the card being edited
func (s *Session) CardID() int { return s.cardID }

// Card returns the in-memory card, including saved but not other unsaved changes
func (s *Session) Card() domain.Card { return s.card }

// Missing reports whether the card was absent from the store when the session opened
func (s *Session) Missing() bool { return s.missing }

// Orientation is the side being edited
func (s *Session) Orientation() domain.Orientation { return s.orientation }

// Text is the current editor content
func (s *Session) Text() string { return s.current }

// Original is the snapshot the dirty flag is computed against
func (s *Session) Original() string { return s.original }

// Dirty reports unsaved changes on the current side
func (s *Session) Dirty() bool { return s.dirty }

// Pending returns the action waiting for confirmation, or ActionNone
func (s *Session) Pending() Action { return s.pending }

// Closed reports whether the session has been closed
func (s *Session) Closed() bool { return s.closed }

// Prompt returns the confirmation message for the pending action
func (s *Session) Prompt() string {
	switch s.pending {
	case ActionClear:
		return MsgClearSide
	case ActionFlip, ActionClose:
		return MsgUnsavedChanges
	default:
		return ""
	}
}

// SetText records a content change and recomputes the dirty flag
func (s *Session) SetText(text string) {
	if s.closed {
		return
	}
	s.current = text
	s.dirty = s.current != s.original
}

// Request asks for action to run. It returns true when the action is parked waiting
// for Confirm or Cancel. Flip and close wait only with unsaved changes; clear always waits.
func (s *Session) Request(ctx context.Context, action Action) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}
	if s.pending != ActionNone {
		return false, ErrConfirmationPending
	}

	switch action {
	case ActionFlip, ActionClose:
		if s.dirty {
			s.pending = action
			return true, nil
		}
		return false, s.run(ctx, action)
	case ActionClear:
		s.pending = action
		return true, nil
	default:
		return false, fmt.Errorf("%w: unsupported action %s", ErrInvalidAction, action)
	}
}

// Confirm runs the pending action and returns it
func (s *Session) Confirm(ctx context.Context) (Action, error) {
	if s.closed {
		return ActionNone, ErrSessionClosed
	}
	action := s.pending
	if action == ActionNone {
		return ActionNone, ErrNothingPending
	}
	s.pending = ActionNone
	return action, s.run(ctx, action)
}

// Cancel discards the pending action without running it. Text and dirty state are kept.
func (s *Session) Cancel() Action {
	action := s.pending
	s.pending = ActionNone
	return action
}

// Save writes the current text into the current side of the card
func (s *Session) Save(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.pending != ActionNone {
		return ErrConfirmationPending
	}

	card := s.card.WithSide(s.orientation, s.current)
	if err := s.write(ctx, card); err != nil {
		return err
	}

	s.card = card
	s.original = s.current
	s.dirty = false
	s.notifier.Notify("", MsgCardSaved)
	return nil
}

func (s *Session) run(ctx context.Context, action Action) error {
	switch action {
	case ActionFlip:
		s.orientation = s.orientation.Opposite()
		s.original = s.card.Side(s.orientation)
		s.current = s.original
		s.dirty = false
	case ActionClear:
		card := s.card.WithSide(s.orientation, "")
		if err := s.write(ctx, card); err != nil {
			return err
		}
		s.card = card
		s.original = ""
		s.current = ""
		s.dirty = false
		s.notifier.Notify("", MsgSideCleared)
	case ActionClose:
		s.current = s.original
		s.dirty = false
		s.closed = true
	}
	return nil
}

// write stores card, attaching it when it is absent. The card may have been
// removed by another writer (an import or a reload) since the session opened.
func (s *Session) write(ctx context.Context, card domain.Card) error {
	if err := s.store.PutCard(ctx, card); err != nil {
		return fmt.Errorf("failed to save card %d: %w", card.ID, err)
	}
	s.missing = false
	return nil
}

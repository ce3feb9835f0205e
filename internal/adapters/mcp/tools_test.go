package mcp

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	return b, nil
}

func (m *memStorage) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStorage) Close() error { return nil }

func newStore(t *testing.T) *application.DeckStore {
	t.Helper()
	store := application.NewDeckStore(&memStorage{data: map[string][]byte{}})
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	return store
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned a protocol error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestSetCardSideThenGetCard(t *testing.T) {
	store := newStore(t)

	out, isErr := call(t, setCardSideHandler(store, nil), map[string]any{"id": 3, "side": "back", "text": "dog"})
	if isErr {
		t.Fatalf("set_card_side failed: %s", out)
	}

	out, isErr = call(t, getCardHandler(store), map[string]any{"id": 3})
	if isErr {
		t.Fatalf("get_card failed: %s", out)
	}
	if !strings.Contains(out, "Reverso:\ndog") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestToolErrors(t *testing.T) {
	store := newStore(t)
	limits := domain.DefaultGridLimits()

	tests := []struct {
		name string
		h    func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args map[string]any
		want string
	}{
		{"get_card missing id", getCardHandler(store), map[string]any{}, "id"},
		{"get_card unknown", getCardHandler(store), map[string]any{"id": 400}, "not found"},
		{"set_card_side bad side", setCardSideHandler(store, nil), map[string]any{"id": 1, "side": "top"}, "front or back"},
		{"resize out of range", resizeDeckHandler(store, limits), map[string]any{"rows": 12}, "between"},
		{"import malformed", importDeckHandler(store, nil), map[string]any{"document": "{nope"}, "invalid JSON"},
		{"reset without confirm", resetDeckHandler(store), map[string]any{}, "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, tt.h, tt.args)
			if !isErr {
				t.Fatalf("expected a tool error, got %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("error %q does not mention %q", out, tt.want)
			}
		})
	}
}

func TestResizeAndGetDeck(t *testing.T) {
	store := newStore(t)

	if out, isErr := call(t, resizeDeckHandler(store, domain.DefaultGridLimits()), map[string]any{"rows": 2, "cols": 2}); isErr {
		t.Fatalf("resize_deck failed: %s", out)
	}
	if store.TotalCards() != 4 {
		t.Fatalf("TotalCards = %d, want 4", store.TotalCards())
	}

	out, _ := call(t, getDeckHandler(store), map[string]any{"include_empty": true})
	if !strings.HasPrefix(out, "Grid 2x2, 4 tiles") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if n := strings.Count(out, "\n#"); n != 4 {
		t.Errorf("expected 4 tile lines, output:\n%s", out)
	}

	out, _ = call(t, getDeckHandler(store), map[string]any{})
	if !strings.Contains(out, "All tiles are empty") {
		t.Errorf("expected empty marker, got:\n%s", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newStore(t)
	if err := src.UpdateCard(context.Background(), domain.Card{ID: 0, Front: "sol", Back: "sun"}); err != nil {
		t.Fatal(err)
	}

	doc, isErr := call(t, exportDeckHandler(src), nil)
	if isErr {
		t.Fatalf("export_deck failed: %s", doc)
	}

	var notified []string
	notifier := ports.NotifierFunc(func(title, _ string) { notified = append(notified, title) })

	dst := newStore(t)
	out, isErr := call(t, importDeckHandler(dst, notifier), map[string]any{"document": doc})
	if isErr {
		t.Fatalf("import_deck failed: %s", out)
	}
	if c, _ := dst.Card(0); c.Front != "sol" || c.Back != "sun" {
		t.Errorf("imported card = %+v", c)
	}
	if len(notified) != 1 {
		t.Errorf("expected one notification, got %v", notified)
	}
}

func TestResetDeck(t *testing.T) {
	store := newStore(t)
	if err := store.UpdateCard(context.Background(), domain.Card{ID: 1, Front: "x"}); err != nil {
		t.Fatal(err)
	}

	if out, isErr := call(t, resetDeckHandler(store), map[string]any{"confirm": true}); isErr {
		t.Fatalf("reset_deck failed: %s", out)
	}
	if c, _ := store.Card(1); !c.IsEmpty() {
		t.Errorf("card 1 = %+v after reset", c)
	}
}

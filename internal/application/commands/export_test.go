package commands

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"tarjetitas/internal/domain"
)

func TestExportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	if err := store.UpdateCard(ctx, domain.Card{ID: 2, Front: "<p>sol</p>", Back: "sun"}); err != nil {
		t.Fatal(err)
	}

	res, err := NewExportCommand(store).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Filename != "tarjetitas.json" {
		t.Errorf("Filename = %q", res.Filename)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &raw); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	for _, key := range []string{"rows", "cols", "cards"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("export is missing %q", key)
		}
	}
	if _, ok := raw["totalCards"]; ok {
		t.Error("export should not carry totalCards")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newStore(t)
	if _, err := NewResizeCommand(src, domain.DefaultGridLimits(), 3, 4).Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if err := src.SetCards(ctx, []domain.Card{
		{ID: 0, Front: "a", Back: "b"},
		{ID: 1, Front: "<img src=\"data:image/png;base64,AA\" alt=\"\">", Back: ""},
		{ID: 5, Front: "", Back: "ñandú"},
	}); err != nil {
		t.Fatal(err)
	}

	exported, err := NewExportCommand(src).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}

	dst := newStore(t)
	if _, err := NewImportCommand(dst, exported.Data).Execute(ctx); err != nil {
		t.Fatalf("import of an export failed: %v", err)
	}

	if !reflect.DeepEqual(src.Snapshot(), dst.Snapshot()) {
		t.Errorf("round trip mismatch:\n src %+v\n dst %+v", src.Snapshot(), dst.Snapshot())
	}
}

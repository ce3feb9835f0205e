package views

import (
	"context"
	"testing"

	"tarjetitas/internal/domain"
)

func TestResetModel(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantReset bool
	}{
		{"confirm", "s", true},
		{"cancel", "n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			if err := store.UpdateCard(context.Background(), domain.Card{ID: 4, Front: "a"}); err != nil {
				t.Fatal(err)
			}
			m := NewResetModel(store)

			_, cmd := m.Update(keyRunes(tt.answer))
			msg := run(cmd)

			c, _ := store.Card(4)
			if tt.wantReset {
				if _, ok := msg.(ResetSuccessMsg); !ok {
					t.Fatalf("got %T, want ResetSuccessMsg", msg)
				}
				if !c.IsEmpty() {
					t.Errorf("card 4 = %+v after reset", c)
				}
			} else {
				if _, ok := msg.(SwitchToGridMsg); !ok {
					t.Fatalf("got %T, want SwitchToGridMsg", msg)
				}
				if c.Front != "a" {
					t.Errorf("cancel changed card 4: %+v", c)
				}
			}
		})
	}
}

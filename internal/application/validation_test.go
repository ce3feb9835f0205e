package application

import (
	"errors"
	"strings"
	"testing"

	"tarjetitas/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "path",
			value:     "tarjetitas.json",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "path",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "path",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", domain.MinRows, false},
		{"upper bound", domain.MaxRows, false},
		{"below", 1, true},
		{"above", 9, true},
		{"zero", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("rows", tt.value, domain.MinRows, domain.MaxRows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRange(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "between 2 and 8") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}

func TestValidateStruct_ReportsNestedField(t *testing.T) {
	type deckDoc struct {
		Cards []domain.Card `validate:"dive"`
	}
	doc := deckDoc{
		Cards: []domain.Card{{ID: 0}, {ID: -4}},
	}

	err := ValidateStruct(doc)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != "cards[1].id" {
		t.Errorf("field = %q, want cards[1].id", valErr.Field)
	}
	if !strings.Contains(valErr.Message, "at least 0") {
		t.Errorf("message = %q", valErr.Message)
	}
}

func TestImportError_IsMalformed(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := error(&ImportError{Reason: "invalid JSON", Err: cause})

	if !errors.Is(err, ErrMalformedImport) {
		t.Error("ImportError should match ErrMalformedImport")
	}
	if !errors.Is(err, cause) {
		t.Error("ImportError should unwrap to its cause")
	}
}

func TestCardNotFoundError_IsNotFound(t *testing.T) {
	err := error(&CardNotFoundError{ID: 12})
	if !errors.Is(err, ErrNotFound) {
		t.Error("CardNotFoundError should match ErrNotFound")
	}
	if err.Error() != "card 12 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

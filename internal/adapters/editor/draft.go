package editor

import (
	"fmt"
	"os"
	"strings"
)

// Draft is a temporary file holding one card side while an external editor runs
type Draft struct {
	Path string
}

// NewDraft writes text to a new temp file. Card content is HTML, so the file gets
// an .html suffix for editor syntax highlighting.
func NewDraft(cardID int, side, text string) (*Draft, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("tarjetita-%d-%s-*.html", cardID, side))
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write draft: %w", err)
	}
	return &Draft{Path: f.Name()}, nil
}

// Read returns the edited text. Editors commonly append a final newline; it is dropped.
func (d *Draft) Read() (string, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// Remove deletes the temp file
func (d *Draft) Remove() error {
	return os.Remove(d.Path)
}

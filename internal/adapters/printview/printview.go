// Package printview renders the deck as a printable HTML page: a grid of fronts,
// a page break, then a grid of backs.
package printview

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"tarjetitas/internal/adapters/richtext"
	"tarjetitas/internal/domain"
)

//go:embed templates/print.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/print.html.tmpl"))

// Options controls the page chrome
type Options struct {
	Title string
	// Tips shows the print instructions, hidden when printing
	Tips bool
	// BackLink is an optional URL for "Volver al inicio"
	BackLink string
}

type tileView struct {
	ID      int
	HTML    template.HTML
	Compact bool
}

type sideView struct {
	Name  string
	Tiles []tileView
}

type pageView struct {
	Title    string
	Tips     bool
	BackLink string
	Rows     int
	Cols     int
	Sides    []sideView
}

// Render writes the print page for deck to w
func Render(w io.Writer, deck domain.Deck, opts Options) error {
	view, err := build(deck, opts)
	if err != nil {
		return err
	}
	if err := page.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render print view: %w", err)
	}
	return nil
}

func build(deck domain.Deck, opts Options) (pageView, error) {
	title := opts.Title
	if title == "" {
		title = "Las Tarjetitas"
	}
	view := pageView{
		Title:    title,
		Tips:     opts.Tips,
		BackLink: opts.BackLink,
		Rows:     max(deck.Rows, 1),
		Cols:     max(deck.Cols, 1),
	}

	tiles := deck.Tiles()
	for _, o := range []domain.Orientation{domain.Front, domain.Back} {
		side := sideView{Name: o.String(), Tiles: make([]tileView, 0, len(tiles))}
		for _, t := range tiles {
			content, err := richtext.ToHTML(t.Card.Side(o))
			if err != nil {
				return pageView{}, fmt.Errorf("card %d %s: %w", t.Card.ID, o, err)
			}
			side.Tiles = append(side.Tiles, tileView{
				ID:      t.Card.ID,
				HTML:    content,
				Compact: t.Compact(o),
			})
		}
		view.Sides = append(view.Sides, side)
	}
	return view, nil
}

package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tarjetitas/internal/adapters/richtext"
	"tarjetitas/internal/adapters/tui/styles"
	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
)

// GridKeyMap defines key bindings for the grid view
type GridKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Edit     key.Binding
	Flip     key.Binding
	RowsUp   key.Binding
	RowsDown key.Binding
	ColsUp   key.Binding
	ColsDown key.Binding
	Reset    key.Binding
	Import   key.Binding
	Export   key.Binding
	Copy     key.Binding
	Print    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var GridKeys = GridKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "arriba"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "abajo"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "izquierda"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "derecha"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "editar"),
	),
	Flip: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "girar"),
	),
	RowsUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "filas"),
	),
	RowsDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "menos filas"),
	),
	ColsUp: key.NewBinding(
		key.WithKeys(">", "."),
		key.WithHelp("</>", "columnas"),
	),
	ColsDown: key.NewBinding(
		key.WithKeys("<", ","),
		key.WithHelp("<", "menos columnas"),
	),
	Reset: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "limpiar todo"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "importar"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "exportar"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copiar JSON"),
	),
	Print: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "imprimir"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ayuda"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

const (
	defaultTileWidth = 14
	minTileWidth     = 6
	tileLines        = 3
)

// GridModel is the model for the deck grid view
type GridModel struct {
	ViewState
	store       commands.DeckWriter
	limits      domain.GridLimits
	deck        domain.Deck
	orientation domain.Orientation
	row         int
	col         int
}

// NewGridModel creates a new grid model
func NewGridModel(store commands.DeckWriter, limits domain.GridLimits) *GridModel {
	return &GridModel{
		store:  store,
		limits: limits,
		deck:   store.Snapshot(),
	}
}

// Init initializes the grid
func (m *GridModel) Init() tea.Cmd {
	return nil
}

// SetDeck replaces the displayed snapshot and clamps the cursor to it
func (m *GridModel) SetDeck(deck domain.Deck) {
	m.deck = deck
	m.clamp()
}

// Deck returns the displayed snapshot
func (m *GridModel) Deck() domain.Deck {
	return m.deck
}

// Orientation is the side every tile currently shows
func (m *GridModel) Orientation() domain.Orientation {
	return m.orientation
}

// Cursor returns the selected row and column
func (m *GridModel) Cursor() (int, int) {
	return m.row, m.col
}

// Selected returns the tile under the cursor
func (m *GridModel) Selected() domain.Tile {
	return m.deck.TileAt(m.row*m.deck.Cols + m.col)
}

// FlipLabel is the label of the grid flip action
func (m *GridModel) FlipLabel() string {
	return "Girar al " + m.orientation.Opposite().Label()
}

// Update handles messages for the grid
func (m *GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case DeckChangedMsg:
		m.SetDeck(m.store.Snapshot())
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, GridKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, GridKeys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, GridKeys.Down):
			if m.row < m.deck.Rows-1 {
				m.row++
			}
		case key.Matches(msg, GridKeys.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, GridKeys.Right):
			if m.col < m.deck.Cols-1 {
				m.col++
			}

		case key.Matches(msg, GridKeys.Edit):
			tile := m.Selected()
			return m, func() tea.Msg {
				return SwitchToEditorMsg{CardID: tile.Card.ID, Orientation: m.orientation}
			}

		case key.Matches(msg, GridKeys.Flip):
			m.orientation = m.orientation.Opposite()

		// Sizes step from the store, not from the rendered copy
		case key.Matches(msg, GridKeys.RowsUp):
			m.resize(m.store.Snapshot().Rows+1, 0)
		case key.Matches(msg, GridKeys.RowsDown):
			m.resize(m.store.Snapshot().Rows-1, 0)
		case key.Matches(msg, GridKeys.ColsUp):
			m.resize(0, m.store.Snapshot().Cols+1)
		case key.Matches(msg, GridKeys.ColsDown):
			m.resize(0, m.store.Snapshot().Cols-1)

		case key.Matches(msg, GridKeys.Reset):
			return m, func() tea.Msg { return SwitchToResetMsg{} }
		case key.Matches(msg, GridKeys.Import):
			return m, func() tea.Msg { return SwitchToFileMsg{Action: FileImport} }
		case key.Matches(msg, GridKeys.Export):
			return m, func() tea.Msg { return SwitchToFileMsg{Action: FileExport} }
		case key.Matches(msg, GridKeys.Copy):
			return m, func() tea.Msg { return CopyExportMsg{} }
		case key.Matches(msg, GridKeys.Print):
			return m, func() tea.Msg { return PrintMsg{} }
		case key.Matches(msg, GridKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

// resize runs synchronously so the new dimensions show in the same frame
func (m *GridModel) resize(rows, cols int) {
	res, err := commands.NewResizeCommand(m.store, m.limits, rows, cols).Execute(context.Background())
	if err != nil {
		m.SetError(err)
		return
	}
	m.SetDeck(m.store.Snapshot())
	m.SetMessage(res.Message, false)
}

func (m *GridModel) clamp() {
	if m.row >= m.deck.Rows {
		m.row = m.deck.Rows - 1
	}
	if m.col >= m.deck.Cols {
		m.col = m.deck.Cols - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col < 0 {
		m.col = 0
	}
}

// View renders the grid
func (m *GridModel) View() string {
	vb := NewViewBuilder()
	vb.Title("Las Tarjetitas")
	vb.Line(fmt.Sprintf("%s  %s",
		RenderSide(m.orientation),
		RenderMuted(fmt.Sprintf("%d × %d · %d tarjetas", m.deck.Rows, m.deck.Cols, m.deck.TotalCards)),
	))
	vb.BlankLine()
	vb.Line(m.renderGrid())
	vb.Message(m.Message, m.MessageErr)
	vb.Raw(m.renderHelpLine())
	return vb.String()
}

func (m *GridModel) tileWidth() int {
	if m.Width == 0 || m.deck.Cols == 0 {
		return defaultTileWidth
	}
	// App padding (2 each side) + tile border and padding (4 per tile)
	w := (m.Width-4)/m.deck.Cols - 4
	if w < minTileWidth {
		return minTileWidth
	}
	return w
}

func (m *GridModel) renderGrid() string {
	width := m.tileWidth()
	tiles := m.deck.Tiles()
	if len(tiles) == 0 {
		return RenderMuted("(sin tarjetas)")
	}

	rows := make([]string, 0, m.deck.Rows)
	for r := 0; r < m.deck.Rows; r++ {
		cells := make([]string, 0, m.deck.Cols)
		for c := 0; c < m.deck.Cols; c++ {
			i := r*m.deck.Cols + c
			if i >= len(tiles) {
				break
			}
			cells = append(cells, m.renderTile(tiles[i], width, r == m.row && c == m.col))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *GridModel) renderTile(t domain.Tile, width int, selected bool) string {
	content := TilePreview(t, m.orientation, width*tileLines)

	var body string
	switch {
	case t.Placeholder || content == "":
		body = styles.TilePlaceholder.Render(content)
	case t.Compact(m.orientation):
		body = styles.TileCompact.Render(content)
	default:
		body = content
	}
	body = styles.TileID.Render(fmt.Sprintf("%d", t.Card.ID)) + "\n" + body

	style := styles.Tile
	if selected {
		style = styles.TileSelected
	}
	return style.Width(width).Height(tileLines + 1).MaxHeight(tileLines + 3).Render(body)
}

// TilePreview returns the plain text shown inside a grid tile
func TilePreview(t domain.Tile, o domain.Orientation, n int) string {
	return richtext.Preview(t.Card.Side(o), n)
}

func (m *GridModel) renderHelpLine() string {
	return RenderHelpLine(
		GridKeys.Edit,
		GridKeys.Flip,
		GridKeys.RowsUp,
		GridKeys.ColsUp,
		GridKeys.Reset,
		GridKeys.Import,
		GridKeys.Export,
		GridKeys.Print,
		GridKeys.Help,
		GridKeys.Quit,
	)
}

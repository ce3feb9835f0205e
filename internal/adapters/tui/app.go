package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"tarjetitas/internal/adapters/printview"
	"tarjetitas/internal/adapters/tui/views"
	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewGrid ViewState = iota
	ViewEditor
	ViewReset
	ViewFile
	ViewHelp
)

// PrintFile is the name of the generated print page
const PrintFile = "tarjetitas-imprimir.html"

// DeckStore is the store surface the TUI needs
type DeckStore interface {
	commands.DeckWriter
	Subscribe(fn func(domain.Deck)) func()
}

// Deps are the collaborators of the TUI. Only Store is required.
type Deps struct {
	Store    DeckStore
	Limits   domain.GridLimits
	Notifier ports.Notifier
	Editor   ports.EditorOpener
	Browser  ports.URLOpener
	Encoder  ports.ImageEncoder
	// PrintDir is where the print page is written; empty means the temp dir
	PrintDir string
	Logger   *slog.Logger
}

// App is the main TUI application model
type App struct {
	deps   Deps
	logger *slog.Logger

	state  ViewState
	grid   *views.GridModel
	editor *views.EditorModel
	reset  *views.ResetModel
	file   *views.FileModel
	help   *views.HelpModel

	status    string
	statusErr bool

	// copyToClipboard is replaced in tests
	copyToClipboard func(string) error

	width  int
	height int
}

var _ ports.Notifier = (*App)(nil)

// NewApp creates a new TUI application
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Limits == (domain.GridLimits{}) {
		deps.Limits = domain.DefaultGridLimits()
	}

	a := &App{
		deps:            deps,
		logger:          deps.Logger,
		state:           ViewGrid,
		grid:            views.NewGridModel(deps.Store, deps.Limits),
		reset:           views.NewResetModel(deps.Store),
		file:            views.NewFileModel(deps.Store),
		help:            views.NewHelpModel(deps.Limits),
		copyToClipboard: clipboard.WriteAll,
	}
	a.editor = views.NewEditorModel(deps.Store, a, deps.Editor, deps.Encoder)
	return a
}

// Attach forwards store changes to p. Call the returned function to stop.
func (a *App) Attach(p *tea.Program) func() {
	return a.deps.Store.Subscribe(func(domain.Deck) {
		// Observers run inside store mutations, which may happen on the UI loop
		go p.Send(views.DeckChangedMsg{})
	})
}

// Notify shows a toast in the status line and forwards it to the configured notifier.
// It is only called from the UI loop.
func (a *App) Notify(title, message string) {
	a.status = message
	a.statusErr = false
	if a.deps.Notifier != nil {
		go a.deps.Notifier.Notify(title, message)
	}
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Status returns the status line text and whether it is an error
func (a *App) Status() (string, bool) {
	return a.status, a.statusErr
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.grid.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.grid.SetSize(msg.Width, msg.Height-1)
		a.editor.SetSize(msg.Width, msg.Height-1)
		a.reset.SetSize(msg.Width, msg.Height-1)
		a.file.SetSize(msg.Width, msg.Height-1)
		a.help.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		a.status = ""
		a.statusErr = false

	case views.DeckChangedMsg:
		a.grid.SetDeck(a.deps.Store.Snapshot())
		return a, nil

	case views.StatusMsg:
		a.status = msg.Text
		a.statusErr = msg.Err
		return a, nil

	// View switching messages
	case views.SwitchToGridMsg:
		a.state = ViewGrid
		a.grid.SetDeck(a.deps.Store.Snapshot())
		return a, nil

	case views.SwitchToEditorMsg:
		a.state = ViewEditor
		a.logger.Debug("open editor", slog.Int("card", msg.CardID), slog.String("side", msg.Orientation.String()))
		return a, a.editor.Open(msg.CardID, msg.Orientation)

	case views.SwitchToResetMsg:
		a.state = ViewReset
		a.reset.ClearMessage()
		return a, nil

	case views.SwitchToFileMsg:
		a.state = ViewFile
		a.file.SetAction(msg.Action)
		return a, a.file.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Results
	case views.ResetSuccessMsg:
		a.state = ViewGrid
		a.grid.SetDeck(a.deps.Store.Snapshot())
		a.status = msg.Message
		return a, nil

	case views.ResetErrMsg:
		a.reset.SetError(msg.Err)
		return a, nil

	case views.FileDoneMsg:
		a.state = ViewGrid
		a.grid.SetDeck(a.deps.Store.Snapshot())
		if msg.Title != "" {
			a.Notify(msg.Title, msg.Message)
		} else {
			a.status = msg.Message
		}
		return a, nil

	case views.ImageDoneMsg:
		// The editor drops results for sessions that are no longer open
		_, cmd := a.editor.Update(msg)
		return a, cmd

	case views.PrintMsg:
		return a, a.print()

	case views.CopyExportMsg:
		return a, a.copyExport()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewGrid:
		_, cmd = a.grid.Update(msg)
	case ViewEditor:
		_, cmd = a.editor.Update(msg)
	case ViewReset:
		_, cmd = a.reset.Update(msg)
	case ViewFile:
		_, cmd = a.file.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) print() tea.Cmd {
	store, browser := a.deps.Store, a.deps.Browser
	dir := a.deps.PrintDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, PrintFile)

	return func() tea.Msg {
		if err := writePrintPage(path, store.Snapshot()); err != nil {
			return views.StatusMsg{Text: err.Error(), Err: true}
		}
		if browser == nil {
			return views.StatusMsg{Text: "Página de impresión: " + path}
		}
		if err := browser.Open(path); err != nil {
			return views.StatusMsg{Text: fmt.Sprintf("failed to open browser: %v", err), Err: true}
		}
		return views.StatusMsg{Text: "Abriendo la vista de impresión"}
	}
}

func writePrintPage(path string, deck domain.Deck) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create print directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create print page: %w", err)
	}

	if err := printview.Render(f, deck, printview.Options{Title: "Las Tarjetitas", Tips: true}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write print page: %w", err)
	}
	return nil
}

func (a *App) copyExport() tea.Cmd {
	store, copyFn := a.deps.Store, a.copyToClipboard
	return func() tea.Msg {
		result, err := commands.NewExportCommand(store).Execute(context.Background())
		if err != nil {
			return views.StatusMsg{Text: err.Error(), Err: true}
		}
		if err := copyFn(string(result.Data)); err != nil {
			return views.StatusMsg{Text: fmt.Sprintf("failed to copy to clipboard: %v", err), Err: true}
		}
		return views.StatusMsg{Text: "JSON copiado al portapapeles"}
	}
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewEditor:
		body = a.editor.View()
	case ViewReset:
		body = a.reset.View()
	case ViewFile:
		body = a.file.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = a.grid.View()
	}
	return body + "\n" + views.RenderStatus(a.status, a.statusErr)
}

package views

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/config"
)

// FileAction selects what the file view does with the path
type FileAction int

const (
	FileImport FileAction = iota
	FileExport
)

func (a FileAction) title() string {
	if a == FileExport {
		return "Exportar"
	}
	return "Importar"
}

// FileModel asks for a path and imports from or exports to it
type FileModel struct {
	ViewState
	store  commands.DeckWriter
	action FileAction
	form   *InputForm
}

// NewFileModel creates a new file view model
func NewFileModel(store commands.DeckWriter) *FileModel {
	return &FileModel{
		store: store,
		form:  NewInputForm(NewInputField("Archivo", commands.ExportFilename, 0)),
	}
}

// SetAction prepares the view for an import or an export
func (m *FileModel) SetAction(action FileAction) {
	m.action = action
	m.ClearMessage()
	m.form.Prefill(commands.ExportFilename)
}

// Action returns the pending file action
func (m *FileModel) Action() FileAction {
	return m.action
}

// Init initializes the file view
func (m *FileModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the file view
func (m *FileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case FileErrMsg:
		m.SetError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToGridMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			path := config.ExpandHome(m.form.Value())
			if path == "" {
				m.SetMessage("Se requiere un archivo", true)
				return m, nil
			}
			if m.action == FileExport {
				return m, m.export(path)
			}
			return m, m.importFile(path)
		}
	}

	return m, m.form.Update(msg)
}

func (m *FileModel) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileErrMsg{Err: fmt.Errorf("failed to read %s: %w", path, err)}
		}
		result, err := commands.NewImportCommand(m.store, data).Execute(context.Background())
		if err != nil {
			return FileErrMsg{Err: err}
		}
		return FileDoneMsg{Title: result.Title, Message: result.Message}
	}
}

func (m *FileModel) export(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewExportCommand(m.store).Execute(context.Background())
		if err != nil {
			return FileErrMsg{Err: err}
		}
		if err := os.WriteFile(path, result.Data, 0o644); err != nil {
			return FileErrMsg{Err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return FileDoneMsg{Message: fmt.Sprintf("%s: %s", result.Message, path)}
	}
}

// FileDoneMsg is sent when an import or export succeeded. Title is set for
// imports, which raise a notification.
type FileDoneMsg struct {
	Title   string
	Message string
}

// FileErrMsg is sent when an import or export failed; the view stays open
type FileErrMsg struct {
	Err error
}

// View renders the file view
func (m *FileModel) View() string {
	return NewViewBuilder().
		Title(m.action.title()).
		Line(m.form.Render()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp(m.action.title())).
		String()
}

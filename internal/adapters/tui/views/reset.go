package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tarjetitas/internal/application/commands"
)

// ResetModel is the model for the "Limpiar todo" confirmation view
type ResetModel struct {
	ConfirmationModel
	store commands.DeckWriter
}

// NewResetModel creates a new reset view model
func NewResetModel(store commands.DeckWriter) *ResetModel {
	return &ResetModel{
		ConfirmationModel: NewConfirmationModel(commands.ResetPrompt),
		store:             store,
	}
}

// Init initializes the reset view
func (m *ResetModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reset view
func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doReset,
			func() tea.Msg { return SwitchToGridMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *ResetModel) doReset() tea.Msg {
	result, err := commands.NewResetCommand(m.store).Execute(context.Background())
	if err != nil {
		return ResetErrMsg{Err: err}
	}
	return ResetSuccessMsg{Message: result.Message}
}

// ResetSuccessMsg is sent when every card has been cleared
type ResetSuccessMsg struct {
	Message string
}

// ResetErrMsg is sent when the reset failed
type ResetErrMsg struct {
	Err error
}

// View renders the reset view
func (m *ResetModel) View() string {
	return NewViewBuilder().
		Title("Limpiar todo").
		Line(RenderConfirmPrompt(m.Prompt)).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(m.Keys.Confirm, m.Keys.Cancel).
		String()
}

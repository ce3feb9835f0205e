package views

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tarjetitas/internal/adapters/editor"
	"tarjetitas/internal/adapters/tui/styles"
	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// EditorKeyMap defines key bindings for the card editor
type EditorKeyMap struct {
	Save     key.Binding
	Flip     key.Binding
	Clear    key.Binding
	Close    key.Binding
	External key.Binding
	Image    key.Binding
	Submit   key.Binding
}

var EditorKeys = EditorKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "guardar"),
	),
	Flip: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "girar"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "limpiar lado"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cerrar"),
	),
	External: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "$EDITOR"),
	),
	Image: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "imagen"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "insertar"),
	),
}

type draftDoneMsg struct {
	sessionID string
	draft     *editor.Draft
	err       error
}

// EditorModel is the modal card editor. All state transitions go through an
// application.Session; the textarea only mirrors the session text.
type EditorModel struct {
	ViewState
	store    application.CardWriter
	notifier ports.Notifier
	opener   ports.EditorOpener
	encoder  ports.ImageEncoder

	session *application.Session
	ctx     context.Context
	cancel  context.CancelFunc

	text        textarea.Model
	imagePath   textinput.Model
	askingImage bool
}

// NewEditorModel creates a card editor. opener and encoder may be nil, which
// disables the external editor and image insertion.
func NewEditorModel(store application.CardWriter, notifier ports.Notifier, opener ports.EditorOpener, encoder ports.ImageEncoder) *EditorModel {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Placeholder = "Escribe aquí (HTML o Markdown)"

	path := textinput.New()
	path.Placeholder = "ruta/a/imagen.png"

	return &EditorModel{
		store:     store,
		notifier:  notifier,
		opener:    opener,
		encoder:   encoder,
		text:      ta,
		imagePath: path,
	}
}

// Open starts a new session on cardID showing side o
func (m *EditorModel) Open(cardID int, o domain.Orientation) tea.Cmd {
	m.finish()
	m.ClearMessage()
	m.session = application.NewSession(m.store, m.notifier, cardID, o)
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.askingImage = false
	m.text.SetValue(m.session.Text())
	m.resize()
	return m.text.Focus()
}

// Session returns the current edit session, nil when none is open
func (m *EditorModel) Session() *application.Session {
	return m.session
}

// SetSize updates the view dimensions
func (m *EditorModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.resize()
}

func (m *EditorModel) resize() {
	if m.Width > 8 {
		m.text.SetWidth(m.Width - 8)
	}
	if m.Height > 14 {
		m.text.SetHeight(m.Height - 14)
	}
}

// Init initializes the editor
func (m *EditorModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the editor
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ImageDoneMsg:
		m.insertImage(msg.Result)
		return m, nil

	case draftDoneMsg:
		m.applyDraft(msg)
		return m, nil
	}

	if m.session == nil {
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	if m.session.Pending() != application.ActionNone {
		return m, m.handleConfirm(keyMsg)
	}
	if m.askingImage {
		return m, m.handleImagePath(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, EditorKeys.Save):
		m.SetError(m.session.Save(m.ctx))
		return m, nil

	case key.Matches(keyMsg, EditorKeys.Flip):
		return m, m.request(application.ActionFlip)

	case key.Matches(keyMsg, EditorKeys.Clear):
		return m, m.request(application.ActionClear)

	case key.Matches(keyMsg, EditorKeys.Close):
		return m, m.request(application.ActionClose)

	case key.Matches(keyMsg, EditorKeys.External):
		return m, m.openExternal()

	case key.Matches(keyMsg, EditorKeys.Image):
		if m.encoder == nil {
			m.SetMessage("Imágenes no disponibles", true)
			return m, nil
		}
		m.askingImage = true
		m.imagePath.SetValue("")
		m.text.Blur()
		return m, m.imagePath.Focus()
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(keyMsg)
	m.session.SetText(m.text.Value())
	return m, cmd
}

func (m *EditorModel) request(action application.Action) tea.Cmd {
	m.ClearMessage()
	pending, err := m.session.Request(m.ctx, action)
	if err != nil {
		m.SetError(err)
		return nil
	}
	if pending {
		return nil
	}
	return m.afterAction(action)
}

func (m *EditorModel) handleConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, DefaultConfirmKeys.Confirm):
		action, err := m.session.Confirm(m.ctx)
		if err != nil {
			m.SetError(err)
			m.text.SetValue(m.session.Text())
			return nil
		}
		return m.afterAction(action)
	case key.Matches(msg, DefaultConfirmKeys.Cancel):
		m.session.Cancel()
	}
	return nil
}

// afterAction syncs the textarea with the session once an action has run
func (m *EditorModel) afterAction(action application.Action) tea.Cmd {
	if action == application.ActionClose || m.session.Closed() {
		m.finish()
		return func() tea.Msg { return SwitchToGridMsg{} }
	}
	m.text.SetValue(m.session.Text())
	return nil
}

// finish cancels in-flight work of the current session. Results that arrive
// afterwards carry a stale session ID and are dropped.
func (m *EditorModel) finish() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.askingImage = false
	m.imagePath.Blur()
}

func (m *EditorModel) handleImagePath(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, EditorKeys.Close):
		m.askingImage = false
		m.imagePath.Blur()
		return m.text.Focus()
	case key.Matches(msg, EditorKeys.Submit):
		path := strings.TrimSpace(m.imagePath.Value())
		m.askingImage = false
		m.imagePath.Blur()
		if path == "" {
			return m.text.Focus()
		}
		m.SetMessage("Procesando imagen…", false)
		return tea.Batch(m.text.Focus(), embedImage(m.ctx, m.encoder, m.session.ID(), path))
	}

	var cmd tea.Cmd
	m.imagePath, cmd = m.imagePath.Update(msg)
	return cmd
}

func embedImage(ctx context.Context, enc ports.ImageEncoder, sessionID, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return ImageDoneMsg{Result: application.ImageResult{SessionID: sessionID, Err: err}}
		}
		defer f.Close()
		return ImageDoneMsg{Result: application.EmbedImage(ctx, enc, sessionID, f)}
	}
}

func (m *EditorModel) current(sessionID string) bool {
	return m.session != nil && !m.session.Closed() && m.session.ID() == sessionID
}

func (m *EditorModel) insertImage(res application.ImageResult) {
	if !m.current(res.SessionID) {
		return
	}
	if res.Err != nil {
		m.SetError(res.Err)
		return
	}
	m.text.InsertString(res.Markup)
	m.session.SetText(m.text.Value())
	m.SetMessage("Imagen insertada", false)
}

func (m *EditorModel) openExternal() tea.Cmd {
	if m.opener == nil {
		m.SetMessage("Editor externo no disponible", true)
		return nil
	}

	sessionID := m.session.ID()
	draft, err := editor.NewDraft(m.session.CardID(), m.session.Orientation().String(), m.session.Text())
	if err != nil {
		m.SetError(err)
		return nil
	}
	cmd, err := m.opener.Command(draft.Path)
	if err != nil {
		_ = draft.Remove()
		m.SetError(err)
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return draftDoneMsg{sessionID: sessionID, draft: draft, err: err}
	})
}

func (m *EditorModel) applyDraft(msg draftDoneMsg) {
	defer func() { _ = msg.draft.Remove() }()

	if !m.current(msg.sessionID) {
		return
	}
	if msg.err != nil {
		m.SetError(fmt.Errorf("editor failed: %w", msg.err))
		return
	}
	text, err := msg.draft.Read()
	if err != nil {
		m.SetError(err)
		return
	}
	m.text.SetValue(text)
	m.session.SetText(text)
}

// View renders the editor
func (m *EditorModel) View() string {
	if m.session == nil {
		return ""
	}

	header := fmt.Sprintf("Tarjeta %d · %s", m.session.CardID(), RenderSide(m.session.Orientation()))
	if m.session.Missing() {
		header += " " + RenderMuted("(nueva)")
	}
	if m.session.Dirty() {
		header += " " + styles.Dirty.Render("● sin guardar")
	}

	vb := NewViewBuilder()
	vb.Title("Editar tarjeta")
	vb.Line(header)
	vb.BlankLine()
	vb.Line(m.text.View())
	vb.BlankLine()

	if m.askingImage {
		vb.Line(styles.InputLabel.Render("Imagen"))
		vb.Line(styles.InputFocused.Render(m.imagePath.View()))
		vb.BlankLine()
	}

	if m.session.Pending() != application.ActionNone {
		vb.Line(RenderConfirmPrompt(m.session.Prompt()))
		vb.BlankLine()
		return vb.String()
	}

	vb.Message(m.Message, m.MessageErr)
	vb.Help(
		EditorKeys.Save,
		EditorKeys.Flip,
		EditorKeys.Clear,
		EditorKeys.External,
		EditorKeys.Image,
		EditorKeys.Close,
	)
	return vb.String()
}

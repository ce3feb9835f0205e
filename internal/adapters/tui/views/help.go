package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tarjetitas/internal/adapters/tui/styles"
	"tarjetitas/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "cerrar"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	limits domain.GridLimits
}

// NewHelpModel creates a new help view model
func NewHelpModel(limits domain.GridLimits) *HelpModel {
	return &HelpModel{limits: limits}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToGridMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Ayuda"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Cuadrícula"))
	b.WriteString("\n")
	b.WriteString(helpLine("h j k l / flechas", "Mover"))
	b.WriteString(helpLine("enter", "Editar tarjeta"))
	b.WriteString(helpLine("f", "Girar al Frente / Reverso"))
	b.WriteString(helpLine("+ / -", "Filas ("+rangeText(m.limits.MinRows, m.limits.MaxRows)+")"))
	b.WriteString(helpLine("> / <", "Columnas ("+rangeText(m.limits.MinCols, m.limits.MaxCols)+")"))
	b.WriteString(helpLine("x", "Limpiar todo"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Editor"))
	b.WriteString("\n")
	b.WriteString(helpLine("ctrl+s", "Guardar el lado actual"))
	b.WriteString(helpLine("ctrl+f", "Girar la tarjeta"))
	b.WriteString(helpLine("ctrl+l", "Limpiar el lado actual"))
	b.WriteString(helpLine("ctrl+e", "Abrir en $EDITOR"))
	b.WriteString(helpLine("ctrl+o", "Insertar imagen"))
	b.WriteString(helpLine("esc", "Cerrar"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Archivo"))
	b.WriteString("\n")
	b.WriteString(helpLine("i", "Importar JSON"))
	b.WriteString(helpLine("e", "Exportar JSON"))
	b.WriteString(helpLine("y", "Copiar JSON al portapapeles"))
	b.WriteString(helpLine("p", "Imprimir (abre el navegador)"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Ayuda"))
	b.WriteString(helpLine("q / ctrl+c", "Salir"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Pulsa "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" o "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" para cerrar"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func rangeText(min, max int) string {
	return fmt.Sprintf("%d a %d", min, max)
}

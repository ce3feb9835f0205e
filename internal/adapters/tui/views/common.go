package views

import (
	"tarjetitas/internal/application"
	"tarjetitas/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err, or clears the message when err is nil
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type (
	SwitchToGridMsg struct{}

	SwitchToEditorMsg struct {
		CardID      int
		Orientation domain.Orientation
	}

	SwitchToResetMsg struct{}

	SwitchToFileMsg struct {
		Action FileAction
	}

	SwitchToHelpMsg struct{}
)

// Messages handled by the app
type (
	// DeckChangedMsg signals a store mutation or re-hydration. It carries no snapshot:
	// receivers read the store, so late or reordered deliveries cannot roll the view back.
	DeckChangedMsg struct{}

	// StatusMsg is a one-line notice shown under the current view
	StatusMsg struct {
		Text string
		Err  bool
	}

	PrintMsg struct{}

	CopyExportMsg struct{}

	// ImageDoneMsg is the result of an image embedding task
	ImageDoneMsg struct {
		Result application.ImageResult
	}
)

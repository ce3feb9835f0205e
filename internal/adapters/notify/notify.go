package notify

import (
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"

	"tarjetitas/internal/ports"
)

// DefaultTitle is used when a notification has no title
const DefaultTitle = "Las Tarjetitas"

const maxMessage = 800

// Dispatcher sends notifications to the log and, when enabled, the desktop
type Dispatcher struct {
	logger  *slog.Logger
	desktop bool
	send    func(title, message string) error
}

var _ ports.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. A nil logger discards log output.
func NewDispatcher(logger *slog.Logger, desktop bool) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{logger: logger, desktop: desktop, send: desktopNotify}
}

// Notify delivers one notification
func (d *Dispatcher) Notify(title, message string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	message = strings.TrimSpace(message)
	if len(message) > maxMessage {
		message = message[:maxMessage] + "..."
	}

	d.logger.Info("notify", slog.String("title", title), slog.String("message", message))

	if d.desktop {
		if err := d.send(title, message); err != nil {
			d.logger.Warn("notify: desktop notification failed", slog.String("error", err.Error()))
		}
	}
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

package ports

// Notifier delivers fire-and-forget user-visible messages (toasts)
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(title, message string)

// Notify calls f
func (f NotifierFunc) Notify(title, message string) {
	f(title, message)
}

// NopNotifier discards notifications
type NopNotifier struct{}

// Notify does nothing
func (NopNotifier) Notify(string, string) {}

package ports

// URLOpener defines the interface for handing a file or URL to the desktop
type URLOpener interface {
	// Open opens the target (a local file path or a URL) in the default application,
	// which for the print view is the web browser
	Open(target string) error
}

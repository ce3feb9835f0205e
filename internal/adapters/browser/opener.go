package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener implements ports.URLOpener with the platform's default handler
type Opener struct {
	// run is replaced in tests
	run func(cmd *exec.Cmd) error
}

// NewOpener creates a new browser opener
func NewOpener() *Opener {
	return &Opener{run: func(cmd *exec.Cmd) error { return cmd.Start() }}
}

// Open opens a local file or URL in the default browser
func (o *Opener) Open(target string) error {
	uri, err := BuildURI(target)
	if err != nil {
		return err
	}
	cmd, err := command(runtime.GOOS, uri)
	if err != nil {
		return err
	}
	if err := o.run(cmd); err != nil {
		return fmt.Errorf("failed to open %s: %w", uri, err)
	}
	return nil
}

// BuildURI turns a local path into a file:// URI and passes URLs through
func BuildURI(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("nothing to open")
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "file://") {
		return target, nil
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func command(goos, uri string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", uri), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", uri), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", uri), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

package ports

import "os/exec"

// EditorOpener defines the interface for editing card text in an external editor
type EditorOpener interface {
	// Command returns an exec.Cmd that opens path in the user's editor.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// OpenFile opens path in the editor and waits for it to exit
	OpenFile(path string) error
}

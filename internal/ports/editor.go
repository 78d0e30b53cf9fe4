package ports

import "os/exec"

// EditorOpener opens a source note in an external editor, for inspecting a
// note before migrating it.
type EditorOpener interface {
	// OpenFile opens the specified file in the user's preferred editor.
	// It uses $EDITOR, falling back to common editors.
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor, for
	// integrating with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}

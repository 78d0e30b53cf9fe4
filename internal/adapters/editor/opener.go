package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener. The TUI uses it to inspect a source
// note before committing to a migration, so the editor has to block until
// the user closes the file; GUI editors need their wait flag for that
// (EDITOR="code --wait").
type Opener struct{}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile opens a note and blocks until the editor exits.
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a note in the editor, wired to
// the current terminal so bubbletea's ExecProcess can hand control over.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := editorArgv()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// editorArgv resolves the editor command line. $EDITOR and $VISUAL may carry
// arguments, so the value is split into fields rather than taken whole.
func editorArgv() []string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if argv := strings.Fields(os.Getenv(env)); len(argv) > 0 {
			return argv
		}
	}

	// Terminal editors only; a bare GUI editor forks and returns before the
	// user has seen the note.
	for _, candidate := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return []string{path}
		}
	}

	return nil
}

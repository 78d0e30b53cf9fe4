package logseq

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// Opener implements ports.GraphOpener using the logseq:// URI scheme.
type Opener struct {
	graphPath string
	graphName string
}

// Ensure Opener implements GraphOpener
var _ ports.GraphOpener = (*Opener)(nil)

// NewOpener creates a Logseq opener for the given graph path. Logseq
// identifies graphs by their directory name.
func NewOpener(graphPath string) *Opener {
	return &Opener{
		graphPath: graphPath,
		graphName: filepath.Base(graphPath),
	}
}

// OpenPage opens the page owning the given destination file in Logseq.
func (o *Opener) OpenPage(destinationPath string) error {
	uri, err := o.BuildURI(destinationPath)
	if err != nil {
		return err
	}
	return o.openURI(uri)
}

// BuildURI constructs the logseq:// URI for a destination file path.
func (o *Opener) BuildURI(destinationPath string) (string, error) {
	page, err := o.PageName(destinationPath)
	if err != nil {
		return "", err
	}

	// The graph name is a path segment and the page a query value; a space
	// escapes to %20 in the first and + in the second.
	uri := fmt.Sprintf("logseq://graph/%s?page=%s",
		url.PathEscape(o.graphName),
		url.QueryEscape(page),
	)

	return uri, nil
}

// PageName derives the Logseq page name from a destination file path.
// Page files use the triple-underscore namespace escape, which Logseq
// displays as "/"; journal files use underscore-joined dates, which Logseq
// names with hyphens.
// e.g., "<graph>/pages/projects___alpha.md" -> "projects/alpha"
// e.g., "<graph>/journals/2024_01_15.md" -> "2024-01-15"
func (o *Opener) PageName(destinationPath string) (string, error) {
	relPath, err := filepath.Rel(o.graphPath, destinationPath)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}

	if strings.HasPrefix(relPath, "..") {
		return "", fmt.Errorf("file is outside the graph: %s", destinationPath)
	}

	relPath = filepath.ToSlash(relPath)
	folder, name, found := strings.Cut(relPath, "/")
	if !found {
		return "", fmt.Errorf("file is not inside pages/ or journals/: %s", destinationPath)
	}
	name = strings.TrimSuffix(name, domain.NoteExtension)

	switch folder {
	case domain.PagesFolder:
		return strings.ReplaceAll(name, domain.PageDelimiter, "/"), nil
	case domain.JournalsFolder:
		return strings.ReplaceAll(name, domain.JournalDelimiter, "-"), nil
	default:
		return "", fmt.Errorf("file is not inside pages/ or journals/: %s", destinationPath)
	}
}

func (o *Opener) openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}

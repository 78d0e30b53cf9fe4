package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"trasloco/internal/adapters/editor"
	"trasloco/internal/adapters/filesystem"
	"trasloco/internal/adapters/sqlite"
	"trasloco/internal/adapters/tui"
	"trasloco/internal/config"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	dryRun := flag.Bool("dry-run", false, "start with dry-run enabled")
	strict := flag.Bool("strict", false, "fail on contested destinations")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize adapters
	scanner := filesystem.NewScanner()
	copier := filesystem.NewCopier()
	metadata := filesystem.NewMetadataReader()
	editorOpener := editor.NewOpener()

	ledger := sqlite.NewLedger()
	if err := ledger.Open(cfg.LedgerPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer ledger.Close()

	// Create and run TUI app
	app := tui.NewApp(scanner, copier, metadata, ledger, cfg.Bindings(), editorOpener, *dryRun, *strict)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

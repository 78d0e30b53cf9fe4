package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trasloco/internal/adapters/filesystem"
	"trasloco/internal/adapters/sqlite"
	"trasloco/internal/application"
	"trasloco/internal/config"
	"trasloco/internal/ports"
)

var (
	configPath  string
	sourceFlag  string
	destFlag    string
	journalFlag string
	verbose     bool
	quiet       bool

	bindings   []application.VaultBinding
	ledgerPath string
	ledger     *sqlite.Ledger
	scanner    ports.NoteScanner
	copier     ports.NoteCopier
	metadata   ports.MetadataReader
	logger     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "trasloco-cli",
	Short: "CLI for migrating dot-delimited vaults into Logseq graphs",
	Long: `trasloco-cli converts vaults of dot-delimited markdown notes into
Logseq graphs.

Hierarchical notes like projects.alpha.md land in pages/ with the
triple-underscore namespace escape; dated notes under the journal root
land in journals/ named by their date. Every migration run is recorded
in a ledger so collisions and duplicate titles can be reported later.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger = newLogger()
		scanner = filesystem.NewScanner()
		copier = filesystem.NewCopier()
		metadata = filesystem.NewMetadataReader()

		if sourceFlag != "" || destFlag != "" {
			// --source/--dest define a single ad-hoc binding without a
			// config file.
			bindings = []application.VaultBinding{{
				SourceRoot:      config.ExpandHome(sourceFlag),
				DestinationRoot: config.ExpandHome(destFlag),
				JournalRoot:     journalFlag,
			}}
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		bindings = cfg.Bindings()
		ledgerPath = cfg.LedgerPath()
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if ledger != nil {
		ledger.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every copied file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "source vault root (bypasses the config file)")
	rootCmd.PersistentFlags().StringVar(&destFlag, "dest", "", "destination graph root (bypasses the config file)")
	rootCmd.PersistentFlags().StringVar(&journalFlag, "journal-root", "", "identifier prefix of dated notes, e.g. daily")
}

// newLogger builds the console logger, honoring --verbose and --quiet.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// GetBindings returns the configured vault bindings
func GetBindings() []application.VaultBinding {
	return bindings
}

// GetScanner returns the initialized note scanner
func GetScanner() ports.NoteScanner {
	return scanner
}

// GetCopier returns the initialized note copier
func GetCopier() ports.NoteCopier {
	return copier
}

// GetMetadata returns the initialized metadata reader
func GetMetadata() ports.MetadataReader {
	return metadata
}

// GetLogger returns the configured logger
func GetLogger() zerolog.Logger {
	return logger
}

// GetLedger opens the migration ledger on first use. Plan and resolve never
// touch it, so the database file is only created for commands that record or
// report runs.
func GetLedger() (ports.MigrationLedger, error) {
	if ledger == nil {
		l := sqlite.NewLedger()
		if err := l.Open(ledgerPath); err != nil {
			return nil, err
		}
		ledger = l
	}
	return ledger, nil
}

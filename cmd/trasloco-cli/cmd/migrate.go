package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trasloco/internal/application/commands"
)

var (
	dryRun bool
	strict bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy every note into its destination graph",
	Long: `Copy every note of every configured vault into its Logseq graph.

Source vaults are never modified. Existing destination files are
overwritten. Destinations claimed by more than one note are copied in
plan order, so the last claim wins; --strict skips contested
destinations and fails the vault instead.

Examples:
  trasloco-cli migrate --dry-run
  trasloco-cli migrate --strict
  trasloco-cli --source ~/vault --dest ~/graph --journal-root daily migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ledger, err := GetLedger()
		if err != nil {
			return err
		}

		migrateCmd := commands.NewMigrateCommand(GetScanner(), GetCopier(), GetMetadata(), ledger, GetBindings())
		migrateCmd.DryRun = dryRun
		migrateCmd.Strict = strict
		migrateCmd.SetLogger(GetLogger())

		result, err := migrateCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if result.DryRun {
			fmt.Println("dry run, no files copied")
		}
		for _, v := range result.Vaults {
			printVaultResult(v, result.DryRun)
		}

		if result.Failed() || result.TotalFailed() > 0 {
			return fmt.Errorf("migration finished with failures")
		}
		return nil
	},
}

func printVaultResult(v commands.VaultResult, dryRun bool) {
	fmt.Println(v.Binding.SourceRoot)
	if v.Err != nil {
		fmt.Printf("  error: %v\n", v.Err)
	}
	if v.Err != nil && v.Stats.NotesScanned == 0 {
		return
	}

	if dryRun {
		fmt.Printf("  %d notes staged (%d pages, %d journals)\n",
			v.Stats.NotesScanned, v.Stats.Pages, v.Stats.Journals)
	} else {
		fmt.Printf("  %d copied, %d skipped, %d failed\n",
			v.Stats.Copied, v.Stats.Skipped, v.Stats.Failed)
	}

	for _, col := range v.Collisions {
		fmt.Printf("  collision %s claimed by %d notes\n", relDest(v.Binding, col.DestinationPath), len(col.SourcePaths))
	}
	for _, fe := range v.FileErrors {
		fmt.Printf("  failed %s: %v\n", fe.SourcePath, fe.Err)
	}
	if v.RunID != "" {
		fmt.Printf("  run %s\n", v.RunID)
	}
}

func init() {
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan and record without copying")
	migrateCmd.Flags().BoolVar(&strict, "strict", false, "fail on contested destinations instead of letting the last copy win")
	rootCmd.AddCommand(migrateCmd)
}

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"trasloco/internal/application"
	"trasloco/internal/application/commands"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview the migration without copying anything",
	Long: `Compute and print the full migration mapping of every configured
vault. Nothing is copied and nothing is recorded.

Each note prints as "[kind] identifier → destination"; destinations
claimed by more than one note are listed afterwards.

Examples:
  trasloco-cli plan
  trasloco-cli --source ~/vault --dest ~/graph --journal-root daily plan`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		planCmd := commands.NewPlanCommand(GetScanner(), GetBindings())
		result, err := planCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for i, v := range result.Vaults {
			if i > 0 {
				fmt.Println()
			}
			printVaultPlan(v)
		}

		if result.Failed() {
			return fmt.Errorf("some vaults could not be planned")
		}
		return nil
	},
}

func printVaultPlan(v commands.VaultPlan) {
	fmt.Println(v.Binding.SourceRoot)
	if v.Err != nil {
		fmt.Printf("  error: %v\n", v.Err)
		return
	}

	for _, m := range v.Plan.Entries {
		fmt.Printf("  [%s] %s → %s\n", m.Kind, m.Identifier, relDest(v.Binding, m.DestinationPath))
	}

	for _, col := range v.Plan.Collisions() {
		fmt.Printf("  collision %s claimed by %d notes\n", relDest(v.Binding, col.DestinationPath), len(col.SourcePaths))
		for _, src := range col.SourcePaths {
			fmt.Printf("    %s\n", src)
		}
	}

	fmt.Printf("  %d notes (%d pages, %d journals)\n", len(v.Plan.Entries), v.Plan.Pages(), v.Plan.Journals())
}

// relDest shortens a destination path to its graph-relative form for
// display. The full path is kept when it falls outside the graph.
func relDest(b application.VaultBinding, destinationPath string) string {
	rel, err := filepath.Rel(b.DestinationRoot, destinationPath)
	if err != nil {
		return destinationPath
	}
	return rel
}

func init() {
	rootCmd.AddCommand(planCmd)
}

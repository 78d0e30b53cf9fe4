package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"trasloco/internal/application/commands"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Report collisions and duplicate titles from a recorded run",
	Long: `Report the findings of a recorded migration run: destinations that
were claimed by more than one note, and frontmatter titles shared by
more than one note. Without a run ID the most recent run is reported.

Examples:
  trasloco-cli report
  trasloco-cli report 3f1c2ab8-91d4-4f0e-b1c7-2a6f0d9e8c11`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ledger, err := GetLedger()
		if err != nil {
			return err
		}

		runID := ""
		if len(args) > 0 {
			runID = args[0]
		}

		reportCmd := commands.NewReportCommand(ledger, runID)
		report, err := reportCmd.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("run %s\n", report.RunID)
		fmt.Printf("%d notes (%d pages, %d journals): %d copied, %d skipped, %d failed\n",
			report.Stats.NotesScanned, report.Stats.Pages, report.Stats.Journals,
			report.Stats.Copied, report.Stats.Skipped, report.Stats.Failed)
		if report.Clean() {
			fmt.Println("no collisions, no duplicate titles")
			return nil
		}

		for _, col := range report.Collisions {
			fmt.Printf("collision %s\n", col.DestinationPath)
			for _, src := range col.SourcePaths {
				fmt.Printf("  %s\n", src)
			}
		}
		for _, g := range report.DuplicateTitles {
			fmt.Printf("duplicate title %q\n", g.Title)
			for _, src := range g.SourcePaths {
				fmt.Printf("  %s\n", src)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

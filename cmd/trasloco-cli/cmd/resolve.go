package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"trasloco/internal/adapters/logseq"
	"trasloco/internal/application/commands"
	"trasloco/internal/config"
)

var openInLogseq bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <source-path>",
	Short: "Print the destination of a single note",
	Long: `Resolve the Logseq destination of one source note. The note must
live under a configured vault. Only the destination path is printed, so
the output can be piped.

Examples:
  trasloco-cli resolve ~/vault/daily.2024.01.15.md
  trasloco-cli resolve ~/vault/projects.alpha.md --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		sourcePath, err := filepath.Abs(config.ExpandHome(args[0]))
		if err != nil {
			return err
		}

		resolveCmd := commands.NewResolveCommand(GetBindings(), sourcePath)
		result, err := resolveCmd.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Mapping.DestinationPath)

		if openInLogseq {
			opener := logseq.NewOpener(result.Binding.DestinationRoot)
			return opener.OpenPage(result.Mapping.DestinationPath)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&openInLogseq, "open", false, "open the destination page in Logseq")
	rootCmd.AddCommand(resolveCmd)
}

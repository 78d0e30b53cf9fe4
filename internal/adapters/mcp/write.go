package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"trasloco/internal/application/commands"
)

// RegisterWriteTools adds the migration tool to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(migrateTool(), migrateHandler(deps))
}

// --- migrate ---

func migrateTool() mcp.Tool {
	return mcp.NewTool("migrate",
		mcp.WithDescription("Copy every note of every configured vault into its destination graph. Runs are recorded in the migration ledger."),
		mcp.WithBoolean("dry_run",
			mcp.Description("Plan and record the run without copying any file"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Skip notes whose destination is claimed by more than one source and mark the vault failed"),
		),
	)
}

func migrateHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMigrateCommand(deps.Scanner, deps.Copier, deps.Metadata, deps.Ledger, deps.Bindings)
		cmd.DryRun = req.GetBool("dry_run", false)
		cmd.Strict = req.GetBool("strict", false)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if result.DryRun {
			sb.WriteString("Dry run, no files copied.\n")
		}
		for _, v := range result.Vaults {
			sb.WriteString(formatVaultResult(v, result.DryRun))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatVaultResult(v commands.VaultResult, dryRun bool) string {
	var sb strings.Builder
	if dryRun {
		fmt.Fprintf(&sb, "%s  %d notes staged (%d pages, %d journals)",
			v.Binding.SourceRoot, v.Stats.NotesScanned, v.Stats.Pages, v.Stats.Journals)
	} else {
		fmt.Fprintf(&sb, "%s  %d copied, %d skipped, %d failed",
			v.Binding.SourceRoot, v.Stats.Copied, v.Stats.Skipped, v.Stats.Failed)
	}
	if v.RunID != "" {
		fmt.Fprintf(&sb, "  run %s", v.RunID)
	}
	if v.Err != nil {
		fmt.Fprintf(&sb, "\n  error: %v", v.Err)
	}
	for _, col := range v.Collisions {
		fmt.Fprintf(&sb, "\n  collision %s", col.DestinationPath)
		for _, src := range col.SourcePaths {
			fmt.Fprintf(&sb, "\n    %s", src)
		}
	}
	for _, fe := range v.FileErrors {
		fmt.Fprintf(&sb, "\n  failed %s: %v", fe.SourcePath, fe.Err)
	}
	return sb.String()
}

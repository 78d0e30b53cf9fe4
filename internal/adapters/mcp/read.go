package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"trasloco/internal/application/commands"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// Deps bundles the adapters and configured vaults the migration tools run
// against. Registration is split read/write so a caller can expose a
// read-only server.
type Deps struct {
	Scanner  ports.NoteScanner
	Copier   ports.NoteCopier
	Metadata ports.MetadataReader
	Ledger   ports.MigrationLedger
	Bindings []domain.VaultBinding
}

// RegisterReadTools adds all read-only migration tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(resolveTool(), resolveHandler(deps))
	s.AddTool(classifyTool(), classifyHandler())
	s.AddTool(planTool(), planHandler(deps))
	s.AddTool(duplicatesTool(), duplicatesHandler(deps))
}

// --- resolve ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve",
		mcp.WithDescription("Get the destination path a source note migrates to. The note must live under a configured vault."),
		mcp.WithString("source_path",
			mcp.Description("Path to the source note (e.g. /vault/daily.2024.01.15.md)"),
			mcp.Required(),
		),
	)
}

func resolveHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sourcePath := req.GetString("source_path", "")

		cmd := commands.NewResolveCommand(deps.Bindings, sourcePath)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Mapping.DestinationPath), nil
	}
}

// --- classify ---

func classifyTool() mcp.Tool {
	return mcp.NewTool("classify",
		mcp.WithDescription("Classify a note identifier as page or journal and show the flattened name it migrates to."),
		mcp.WithString("identifier",
			mcp.Description("Dot-delimited note identifier (e.g. daily.2024.01.15)"),
			mcp.Required(),
		),
		mcp.WithString("journal_root",
			mcp.Description("Journal hierarchy root (e.g. daily). Omit to classify everything as a page."),
		),
	)
}

func classifyHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identifier := req.GetString("identifier", "")
		if identifier == "" {
			return toolError(fmt.Errorf("identifier is required"))
		}
		journalRoot := req.GetString("journal_root", "")

		if domain.IsJournalEntry(identifier, journalRoot) {
			name, err := domain.FlattenJournalSuffix(identifier, journalRoot)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(fmt.Sprintf("journal  %s", name)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("page  %s", domain.FlattenPage(identifier))), nil
	}
}

// --- plan ---

func planTool() mcp.Tool {
	return mcp.NewTool("plan",
		mcp.WithDescription("Compute the migration plan for every configured vault: note counts per kind and destinations claimed by more than one note. Touches nothing."),
	)
}

func planHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewPlanCommand(deps.Scanner, deps.Bindings)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatEntities(result.Vaults, formatVaultPlan)
	}
}

func formatVaultPlan(v commands.VaultPlan) string {
	var sb strings.Builder
	if v.Err != nil {
		fmt.Fprintf(&sb, "%s  error: %v", v.Binding.SourceRoot, v.Err)
		return sb.String()
	}
	fmt.Fprintf(&sb, "%s  %d notes (%d pages, %d journals)",
		v.Binding.SourceRoot, len(v.Plan.Entries), v.Plan.Pages(), v.Plan.Journals())
	for _, col := range v.Plan.Collisions() {
		fmt.Fprintf(&sb, "\n  collision %s", col.DestinationPath)
		for _, src := range col.SourcePaths {
			fmt.Fprintf(&sb, "\n    %s", src)
		}
	}
	return sb.String()
}

// --- duplicates ---

func duplicatesTool() mcp.Tool {
	return mcp.NewTool("duplicates",
		mcp.WithDescription("Report frontmatter titles shared by more than one note in a recorded migration run."),
		mcp.WithString("run_id",
			mcp.Description("Run to report on. Omit for the most recent run."),
		),
	)
}

func duplicatesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runID := req.GetString("run_id", "")

		cmd := commands.NewReportCommand(deps.Ledger, runID)
		report, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(report.DuplicateTitles) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No duplicate titles in run %s.", report.RunID)), nil
		}
		return formatEntities(report.DuplicateTitles, formatTitleGroup)
	}
}

func formatTitleGroup(g domain.TitleGroup) string {
	return fmt.Sprintf("%s\n  %s", g.Title, strings.Join(g.SourcePaths, "\n  "))
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

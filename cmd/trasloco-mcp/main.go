package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"trasloco/internal/adapters/filesystem"
	mcpadapter "trasloco/internal/adapters/mcp"
	"trasloco/internal/adapters/sqlite"
	"trasloco/internal/config"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("trasloco-mcp: %v", err)
	}

	ledger := sqlite.NewLedger()
	if err := ledger.Open(cfg.LedgerPath()); err != nil {
		log.Fatalf("trasloco-mcp: %v", err)
	}
	defer ledger.Close()

	deps := mcpadapter.Deps{
		Scanner:  filesystem.NewScanner(),
		Copier:   filesystem.NewCopier(),
		Metadata: filesystem.NewMetadataReader(),
		Ledger:   ledger,
		Bindings: cfg.Bindings(),
	}

	mcpServer := server.NewMCPServer(
		"trasloco-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("trasloco-mcp: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	log.Println("[MCP Progress Server] Starting board progress MCP server v1.0.0")

	// 1. Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "board-progress-server",
		Version: "v1.0.0",
	}, nil)

	// 2. Register tools
	registerTools(server)

	// 3. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[MCP Progress Server] Received shutdown signal")
		cancel()
	}()

	// 4. Start server with stdio transport
	log.Println("[MCP Progress Server] Starting on stdio transport...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("[MCP Progress Server] Server error: %v", err)
	}
	log.Println("[MCP Progress Server] Server stopped gracefully")
}

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "calculate_progress",
		Description: "Compute a parent item's completion percentage and status from its subitems' statuses",
	}, HandleCalculateProgress)
	log.Println("[MCP Progress Server] Registered tool: calculate_progress")

	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_progress",
		Description: "Map a 0-100 progress value to the parent status label",
	}, HandleClassifyProgress)
	log.Println("[MCP Progress Server] Registered tool: classify_progress")
}

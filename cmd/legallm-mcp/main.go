package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sobiswriter/LegalLM/internal/config"
	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("LEGALLM_CONFIG"))
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger with default configuration
	log, err := logger.NewLogger(logger.LogConfig{
		Output: cfg.LogOutput,
		Level:  cfg.LogLevel,
	})
	if err != nil {
		// Fall back to stderr if logger initialization fails
		panic(err)
	}

	log.Info("Starting legallm MCP server")

	srv := server.CreateServer(cfg, log)
	err = srv.Run(context.Background(), &mcp.StdioTransport{})
	if err != nil {
		log.Fatal("Server failed: %v", err)
	}
}

package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/analytics"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/client"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/mcp"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/storage"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
//
// This is the main command: it exposes the tool registry, conversation
// context, and context-generation prompts over stdio transport.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the gadget-scout-mcp server using stdio transport.

The server exposes:
  • 3 resources  - tool registry, conversation context, tool analytics
  • 5 tools      - smartphone-shopping tool metadata (execution is external)
  • 2 prompts    - get_query_context and get_conversation_summary`,
		Example: `  # Run directly
  gadget-scout-mcp serve

  # Add to an MCP client
  claude mcp add gadget-scout -- gadget-scout-mcp serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
// Implements graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe() error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setupLogging(cfg); err != nil {
		log.Printf("Warning: %v", err)
	}

	log.Printf("Initializing %s v%s", cfg.Server.Name, cfg.Server.Version)

	cl := client.New(cfg)

	var tracker *analytics.Tracker
	if cfg.Settings != nil && cfg.Settings.EnableAnalytics {
		tracker = analytics.NewTracker(storage.NewStorage(cfg.Settings.AnalyticsDBPath))
	}

	server := mcp.NewServer(cfg, cl, tracker)

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	// Run server in separate goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)

		if err := server.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
			return err
		}

		log.Println("Shutdown complete")
		return nil

	case err := <-errChan:
		// Server.Run() returned (stdin closed or error)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("Error during cleanup: %v", closeErr)
		}
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// setupLogging redirects logging to the configured file, if any.
// Logging stays on stderr otherwise; stdout carries the protocol stream.
func setupLogging(cfg *config.Config) error {
	log.SetOutput(os.Stderr)

	if cfg.Settings == nil || cfg.Settings.LogFile == "" {
		return nil
	}

	f, err := os.OpenFile(cfg.Settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

/*
Package main is the entry point for the gadget-scout-mcp CLI.

gadget-scout-mcp is the context-assembly server for the Gadget Spec
Scout smartphone-shopping assistant: it tracks recent queries, infers
coarse user preferences, and renders tool-call suggestions for the
LLM-orchestration layer over MCP stdio transport.

Usage:
  gadget-scout-mcp [command]

Available Commands:
  serve       Run the MCP server (stdio transport)
  context     Generate the context block for a query
  summary     Print the conversation summary
  tools       List or search the tool catalog
  stats       Show persisted tool-call analytics
  version     Print version information
  help        Help about any command

Examples:
  # Run as MCP server
  gadget-scout-mcp serve

  # Inspect classifier output for a query
  gadget-scout-mcp context "Compare Samsung Galaxy S24 Ultra and iPhone 15 Pro Max"
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/cli"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gadget-scout-mcp",
		Short: "Context management server for the Gadget Spec Scout assistant",
		Long: `gadget-scout-mcp is an MCP (Model Context Protocol) server that manages
conversation context for a smartphone-shopping assistant.

It tracks a rolling window of user queries, infers budget, feature, and
brand preferences from them, classifies incoming queries, and suggests
which tools the orchestrating LLM should call next. The tools themselves
(device search, specs, pricing, reviews, comparison) are executed by the
notebook-side orchestrator; this server only manages metadata.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewContextCmd())
	rootCmd.AddCommand(cli.NewSummaryCmd())
	rootCmd.AddCommand(cli.NewToolsCmd())
	rootCmd.AddCommand(cli.NewStatsCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

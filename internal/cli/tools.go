package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/registry"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/search"
)

// NewToolsCmd creates the 'tools' command for inspecting the catalog.
func NewToolsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog",
		Long:  `Display the static catalog of smartphone-shopping tools with their metadata.`,
		Example: `  gadget-scout-mcp tools
  gadget-scout-mcp tools --json
  gadget-scout-mcp tools find "price comparison"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolsList(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.AddCommand(newToolsFindCmd())

	return cmd
}

// runToolsList displays the catalog.
func runToolsList(cmd *cobra.Command, jsonOutput bool) error {
	reg := registry.NewRegistry()
	tools := reg.AllTools()

	if jsonOutput {
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tools: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Available Tools (%d):\n\n", len(tools))
	for _, tool := range tools {
		cmd.Printf("  • %s [%s]: %s\n", tool.Name, tool.Category, tool.Description)
	}
	return nil
}

// newToolsFindCmd creates the 'tools find' subcommand for searching the
// catalog by natural-language phrase.
func newToolsFindCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search the tool catalog",
		Long:  `Search tool names, descriptions, usage notes, and example queries for a phrase.`,
		Example: `  gadget-scout-mcp tools find "compare two phones"
  gadget-scout-mcp tools find reviews --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolsFind(cmd, args, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Maximum number of results")

	return cmd
}

// runToolsFind searches the catalog index and prints ranked hits.
func runToolsFind(cmd *cobra.Command, args []string, limit int) error {
	query := strings.Join(args, " ")

	reg := registry.NewRegistry()
	indexer, err := search.NewIndexer(reg.AllTools())
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	defer indexer.Close()

	results, err := indexer.Search(query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Printf("No tools match %q.\n", query)
		return nil
	}

	cmd.Printf("Tools matching %q:\n\n", query)
	for _, result := range results {
		cmd.Printf("  • %s [%s] (score %.2f)\n    %s\n", result.Name, result.Category, result.Score, result.Description)
	}
	return nil
}

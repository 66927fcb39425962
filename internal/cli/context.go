package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/client"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
)

// NewContextCmd creates the 'context' command: a one-shot rendering of
// the context block for a query, using the direct in-process client.
//
// History does not survive between invocations; conversation state is
// per-process. The command is meant for inspecting classifier and
// suggestion output.
func NewContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context <query>",
		Short: "Generate the context block for a query",
		Example: `  gadget-scout-mcp context "Compare Samsung Galaxy S24 Ultra and iPhone 15 Pro Max"
  gadget-scout-mcp context "best phone under ₹50,000"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, args)
		},
	}

	return cmd
}

func runContext(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query argument is required")
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cl := client.New(cfg)
	cmd.Println(cl.GetQueryContext(query))
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/client"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
)

// NewSummaryCmd creates the 'summary' command for printing the
// conversation digest of a fresh session.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the conversation summary",
		Long: `Print the human-readable digest of the current conversation: query
count, recent queries with the tools they used, inferred preferences,
and the conversation theme.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd)
		},
	}

	return cmd
}

func runSummary(cmd *cobra.Command) error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cl := client.New(cfg)
	cmd.Println(cl.GetConversationSummary())
	return nil
}

package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/config"
	"github.com/Sjking2025/Gadget-Spec-Scout/internal/storage"
)

// NewStatsCmd creates the 'stats' command for reading persisted
// tool-call analytics.
func NewStatsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show persisted tool-call analytics",
		Long:  `Display per-tool call totals recorded in the analytics database.`,
		Example: `  gadget-scout-mcp stats
  gadget-scout-mcp stats --days 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, days)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "How many days back to aggregate")

	return cmd
}

func runStats(cmd *cobra.Command, days int) error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Settings == nil || !cfg.Settings.EnableAnalytics {
		cmd.Println("Analytics are disabled in configuration.")
		return nil
	}

	store := storage.NewStorage(cfg.Settings.AnalyticsDBPath)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to open analytics database: %w", err)
	}
	defer store.Close()

	since := time.Now().AddDate(0, 0, -days)
	totals, err := store.Totals(since)
	if err != nil {
		return fmt.Errorf("failed to read analytics: %w", err)
	}

	if len(totals) == 0 {
		cmd.Printf("No tool calls recorded in the last %d days.\n", days)
		return nil
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]].Calls != totals[names[j]].Calls {
			return totals[names[i]].Calls > totals[names[j]].Calls
		}
		return names[i] < names[j]
	})

	cmd.Printf("Tool calls over the last %d days:\n\n", days)
	for _, name := range names {
		t := totals[name]
		cmd.Printf("  • %-16s %4d calls, %4d successes\n", name, t.Calls, t.Successes)
	}
	return nil
}

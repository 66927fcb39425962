package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sjking2025/Gadget-Spec-Scout/internal/version"
)

// NewVersionCmd creates the 'version' command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.GetVersion())
		},
	}
}

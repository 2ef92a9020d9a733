package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"confreport.dev/pkg/confreport/internal/domain"
	m "confreport.dev/pkg/confreport/internal/model"
)

// resetCmd represents the reset command.
var resetCmd = newResetCmd()

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the outcome journal before a new test run",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Reset(cmd.Context(), domain.ResetArgs{
				Journal: m.Path(viper.GetString(journalFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

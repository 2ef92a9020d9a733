package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [inputs...]",
		Short: "Show recorded outcome counts without writing reports",
		Long:  "Show how many failed, skipped and error-kind outcomes a run holds.\n\n" + inputsHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), loadArgs(args))
		},
	}

	addNoJournalFlag(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

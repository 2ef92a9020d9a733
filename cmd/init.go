package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"confreport.dev/pkg/confreport/internal/adapter"
	m "confreport.dev/pkg/confreport/internal/model"
)

var initWithTemplatesFlag bool

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default confreport.yaml configuration file",
		Long: `Create a confreport.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.

With --with-templates the built-in report templates are also written to the
templates directory, keeping any template that already exists there.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			if !initWithTemplatesFlag {
				return nil
			}

			written, err := adapter.ExportBuiltinTemplates(m.Path(viper.GetString(templatesDirKey)))
			if err != nil {
				return err
			}

			for _, path := range written {
				cmd.Printf("wrote %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&initWithTemplatesFlag, withTemplatesFlagName, false, "also write the built-in report templates")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"confreport.dev/pkg/confreport/internal/domain"
	m "confreport.dev/pkg/confreport/internal/model"
)

var generateFallbackFlag bool
var generateEscapeHTMLFlag bool
var generateDiffFlag bool

const generateLongDescription = `Render the HTML reports of a conformance test run.

Writes failed_tests_summary.html and skipped_tests_summary.html when there
are failed or skipped outcomes, and <file>.html for every source file with
error-kind outcomes. Nothing is written for empty categories.

` + inputsHelp

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [inputs...]",
		Short: "Render HTML reports from recorded outcomes",
		Long:  generateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportsPath := viper.GetString(outputFlagName)
			if err := os.MkdirAll(reportsPath, 0o750); err != nil {
				return fmt.Errorf("failed to create reports directory: %w", err)
			}

			_, err := workflow.Generate(cmd.Context(), domain.GenerateArgs{
				LoadArgs: loadArgs(args),
				Render: domain.RenderOptions{
					TemplateDir:     m.Path(viper.GetString(templatesDirKey)),
					ReportDir:       m.Path(reportsPath),
					RowsPlaceholder: viper.GetString(rowsPlaceholderKey),
					NamePlaceholder: viper.GetString(namePlaceholderKey),
					EscapeHTML:      viper.GetBool(escapeHTMLKey),
				},
				FallbackTemplates: viper.GetBool(templatesFallbackKey),
				ShowDiff:          generateDiffFlag,
			})

			return err
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&generateFallbackFlag, fallbackTemplatesFlagName, viper.GetBool(templatesFallbackKey), "use built-in templates when a template file cannot be read")
	bindFlagToConfig(cmd.Flags().Lookup(fallbackTemplatesFlagName), templatesFallbackKey)

	cmd.Flags().BoolVar(&generateEscapeHTMLFlag, escapeHTMLFlagName, viper.GetBool(escapeHTMLKey), "HTML-escape cell contents")
	bindFlagToConfig(cmd.Flags().Lookup(escapeHTMLFlagName), escapeHTMLKey)

	cmd.Flags().BoolVar(&generateDiffFlag, diffFlagName, false, "print expected/actual diffs of failed outcomes")

	addNoJournalFlag(cmd)
}

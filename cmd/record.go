package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"confreport.dev/pkg/confreport/internal/domain"
	m "confreport.dev/pkg/confreport/internal/model"
)

var recordCategoryFlag string
var recordFieldsFlag []string

const recordLongDescription = `Append one test outcome to the outcome journal.

Test runners that live outside this process call record once per failed,
skipped or error-kind outcome; "confreport generate" reads the journal back.

Fields: fileName, kind, absLineNum, actualLineNum, expectedLineNum,
actualValue, expectedValue, formatErrors.`

// recordCmd represents the record command.
var recordCmd = newRecordCmd()

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Append a test outcome to the journal",
		Long:  recordLongDescription,
		Example: `  confreport record -c skipped -f fileName=lists.bal -f kind=output -f absLineNum=12
  confreport record -c error-kind -f fileName=maps.bal -f expectedLineNum=4 \
    -f actualLineNum=5 -f actualValue="{ballerina}KeyNotFound" -f expectedValue=KeyNotFound`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome, err := parseFields(recordFieldsFlag)
			if err != nil {
				return err
			}

			return workflow.Record(cmd.Context(), domain.RecordArgs{
				Journal: m.Path(viper.GetString(journalFlagName)),
				Entry: m.Entry{
					Category: m.Category(recordCategoryFlag),
					Outcome:  outcome,
				},
			})
		},
	}

	configureRecordFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func configureRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&recordCategoryFlag, categoryFlagName, "c", "", "outcome category: failed, skipped or error-kind")
	cmd.Flags().StringArrayVarP(&recordFieldsFlag, fieldFlagName, "f", nil, "outcome field as name=value, value taken verbatim (can be repeated)")
	cobra.CheckErr(cmd.MarkFlagRequired(categoryFlagName))
}

// parseFields splits each name=value at the first '='. The value is kept
// verbatim, including quotes, commas and further '=' characters. A repeated
// name keeps its last value.
func parseFields(fields []string) (m.Outcome, error) {
	outcome := make(m.Outcome, len(fields))

	for _, field := range fields {
		name, value, ok := strings.Cut(field, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected name=value", fieldFlagName, field)
		}

		outcome[m.Field(name)] = value
	}

	return outcome, nil
}

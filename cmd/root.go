// Package cmd provides the root command and CLI setup for confreport.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"confreport.dev/pkg/confreport/internal/adapter"
	"confreport.dev/pkg/confreport/internal/controller"
	"confreport.dev/pkg/confreport/internal/domain"
	m "confreport.dev/pkg/confreport/internal/model"
)

var outcomeSource adapter.OutcomeSource
var outcomeJournal adapter.OutcomeJournal
var templateStore adapter.TemplateStore
var reportWriter adapter.ReportWriter
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that write reports.
var reportsOutputDirFlag string

// templatesDirFlag points at the directory holding the report templates.
var templatesDirFlag string

// journalFlag is the outcome journal shared by record, list, generate and reset.
var journalFlag string

// verboseFlag switches logging to debug level.
var verboseFlag bool

// noJournalFlag makes list and generate ignore the journal.
var noJournalFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	outcomeSource = adapter.NewLocalOutcomeSource()
	outcomeJournal = adapter.NewLocalOutcomeJournal()
	templateStore = adapter.NewLocalTemplateStore()
	reportWriter = adapter.NewLocalReportWriter()
	workflow = domain.NewWorkflow(
		outcomeSource,
		outcomeJournal,
		templateStore,
		reportWriter,
		ui,
	)
}

const inputsHelp = `Outcomes are read from the outcome journal (see "confreport record") and
from any YAML or JSON input files given as arguments, in that order. Each
input file holds a list of entries:

  - category: failed        # failed | skipped | error-kind
    outcome:
      fileName: lists.bal
      kind: output
      expectedLineNum: "12"
      actualLineNum: "12"
      expectedValue: "[1, 2]"
      actualValue: "[2, 1]"`

const rootLongDescription = `confreport turns the outcomes of a conformance test run into static HTML
reports: one summary of failed tests, one of skipped tests, and one report per
source file whose error-kind verification did not match.

` + inputsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confreport",
		Short: "Conformance test report generator",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			if configReadErr != nil {
				slog.Warn("ignoring unreadable config file", "path", viper.ConfigFileUsed(), "error", configReadErr)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for HTML reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&templatesDirFlag, templatesFlagName, "t", viper.GetString(templatesDirKey), "directory holding the report templates")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(templatesFlagName), templatesDirKey)

	cmd.PersistentFlags().StringVarP(&journalFlag, journalFlagName, "j", viper.GetString(journalFlagName), "outcome journal file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(journalFlagName), journalFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// addNoJournalFlag registers --no-journal on commands that read outcomes.
func addNoJournalFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noJournalFlag, noJournalFlagName, false, "ignore the outcome journal and read input files only")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func loadArgs(args []string) domain.LoadArgs {
	journal := m.Path(viper.GetString(journalFlagName))
	if noJournalFlag {
		journal = ""
	}

	return domain.LoadArgs{
		Journal: journal,
		Inputs:  parsePaths(args),
	}
}

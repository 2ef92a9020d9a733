package domain

import (
	"context"
	"fmt"
	"log/slog"

	"confreport.dev/pkg/confreport/internal/adapter"
	"confreport.dev/pkg/confreport/internal/controller"
	m "confreport.dev/pkg/confreport/internal/model"
)

// RecordArgs contains the arguments for appending one outcome to the journal.
type RecordArgs struct {
	Journal m.Path
	Entry   m.Entry
}

// LoadArgs names where the outcomes of a run come from.
type LoadArgs struct {
	Journal m.Path
	Inputs  []m.Path
}

// GenerateArgs contains the arguments for rendering the reports of a run.
type GenerateArgs struct {
	LoadArgs
	Render            RenderOptions
	FallbackTemplates bool
	ShowDiff          bool
}

// ResetArgs contains the arguments for clearing the outcome journal.
type ResetArgs struct {
	Journal m.Path
}

// Workflow drives the CLI commands.
type Workflow interface {
	Record(ctx context.Context, args RecordArgs) error
	List(ctx context.Context, args LoadArgs) error
	Generate(ctx context.Context, args GenerateArgs) ([]m.Report, error)
	Reset(ctx context.Context, args ResetArgs) error
}

type workflow struct {
	source    adapter.OutcomeSource
	journal   adapter.OutcomeJournal
	templates adapter.TemplateStore
	writer    adapter.ReportWriter
	ui        controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	source adapter.OutcomeSource,
	journal adapter.OutcomeJournal,
	templates adapter.TemplateStore,
	writer adapter.ReportWriter,
	ui controller.UI,
) Workflow {
	return &workflow{
		source:    source,
		journal:   journal,
		templates: templates,
		writer:    writer,
		ui:        ui,
	}
}

func (w *workflow) Record(ctx context.Context, args RecordArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Validate against a scratch run so a bad entry never reaches the journal.
	if err := NewRun().Record(args.Entry); err != nil {
		return fmt.Errorf("invalid outcome: %w", err)
	}

	if err := w.journal.Append(args.Journal, args.Entry); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args LoadArgs) error {
	run, err := w.load(ctx, args)
	if err != nil {
		return err
	}

	return w.ui.DisplaySummary(ctx, run.Summary())
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) ([]m.Report, error) {
	run, err := w.load(ctx, args.LoadArgs)
	if err != nil {
		return nil, err
	}

	templates := w.templates
	if args.FallbackTemplates {
		templates = adapter.NewFallbackTemplateStore(templates)
	}

	renderer := NewRenderer(templates, w.writer, args.Render)

	reports, genErr := renderer.Generate(ctx, run)

	if err := w.ui.DisplayReports(ctx, run.Summary(), reports); err != nil {
		slog.Warn("failed to display reports", "run", run.ID(), "error", err)
	}

	if args.ShowDiff {
		if err := w.ui.DisplayFailureDiffs(ctx, run.Failures().All()); err != nil {
			slog.Warn("failed to display failure diffs", "run", run.ID(), "error", err)
		}
	}

	if genErr != nil {
		return reports, fmt.Errorf("generate reports: %w", genErr)
	}

	return reports, nil
}

func (w *workflow) Reset(ctx context.Context, args ResetArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := w.journal.Reset(args.Journal); err != nil {
		return fmt.Errorf("reset journal: %w", err)
	}

	return nil
}

// load builds a Run from the journal followed by each input file in order.
func (w *workflow) load(ctx context.Context, args LoadArgs) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := NewRun()

	if args.Journal != "" {
		entries, err := w.journal.Load(args.Journal)
		if err != nil {
			return nil, fmt.Errorf("load journal: %w", err)
		}

		if err := run.RecordAll(entries); err != nil {
			return nil, fmt.Errorf("journal %s: %w", args.Journal, err)
		}
	}

	for _, input := range args.Inputs {
		entries, err := w.source.LoadFile(input)
		if err != nil {
			return nil, fmt.Errorf("load outcomes: %w", err)
		}

		if err := run.RecordAll(entries); err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}
	}

	slog.Info("loaded run", "run", run.ID(), "inputs", len(args.Inputs), "outcomes", run.Summary().Total())

	return run, nil
}

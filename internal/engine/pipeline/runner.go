package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports"
	"go.trai.ch/wasmbuild/internal/ui/output"
	"go.trai.ch/wasmbuild/internal/ui/style"
	"go.trai.ch/zerr"
)

// Runner executes a Plan stage by stage and stops at the first failure.
type Runner struct {
	executor  ports.Executor
	logger    ports.Logger
	inspector ports.Inspector
	tracer    ports.Tracer

	stdout  io.Writer
	stderr  io.Writer
	workDir string
	verbose bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where report lines and child output are written.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithWorkDir sets the directory reported paths are relative to.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workDir = dir
	}
}

// WithVerbose logs every invocation and artifact summary.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

// NewRunner creates a new Runner.
func NewRunner(
	executor ports.Executor,
	logger ports.Logger,
	inspector ports.Inspector,
	tracer ports.Tracer,
	opts ...Option,
) *Runner {
	r := &Runner{
		executor:  executor,
		logger:    logger,
		inspector: inspector,
		tracer:    tracer,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes plan. Files written by completed stages are left in place
// when a later stage fails.
func (r *Runner) Run(ctx context.Context, plan domain.Plan) (domain.Result, error) {
	var res domain.Result

	if err := r.execute(ctx, plan.Compile); err != nil {
		return res, err
	}

	if plan.Artifact == "" {
		return res, nil
	}
	r.summarize(plan.Artifact)

	wasm := plan.Artifact
	if plan.Reduce != nil {
		if err := r.execute(ctx, *plan.Reduce); err != nil {
			return res, err
		}
		wasm = plan.Reduce.Output
		r.summarize(wasm)
	}

	res.WASM = wasm
	if err := r.report("Output WASM:", wasm); err != nil {
		return res, err
	}

	if plan.Disassemble != nil {
		if err := r.execute(ctx, *plan.Disassemble); err != nil {
			return res, err
		}
		res.WAT = plan.Disassemble.Output
		if err := r.report("Output WAT:", res.WAT); err != nil {
			return res, err
		}
	}

	if plan.Check {
		if err := r.check(ctx, wasm); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *Runner) execute(ctx context.Context, inv domain.Invocation) error {
	ctx, span := r.tracer.Start(ctx, string(inv.Stage))
	defer span.End()

	span.SetAttribute("program", inv.Program)
	span.SetAttribute("args", inv.Args)

	if r.verbose {
		r.logger.Log(r.describe(inv))
	}

	if err := r.executor.Execute(ctx, inv, r.stdout, r.stderr); err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, string(inv.Stage)+" failed")
	}

	return nil
}

// describe renders inv as the shell-quoted line a user could paste.
func (r *Runner) describe(inv domain.Invocation) domain.LogRecord {
	msg := style.Prompt + " " + domain.QuoteCommand(inv.Argv())
	if inv.Stdout != "" {
		msg += " > " + domain.QuoteCommand([]string{r.rel(inv.Stdout)})
	}

	fields := make([]domain.Field, 0, len(inv.Added)+1)
	for _, kv := range inv.Added {
		fields = append(fields, domain.F("env", kv))
	}
	fields = append(fields, domain.F("cwd", r.rel(inv.Dir)))

	return domain.LogRecord{
		Level:   domain.LevelInfo,
		Message: msg,
		Fields:  fields,
	}
}

func (r *Runner) summarize(path string) {
	if !r.verbose {
		return
	}

	sum, err := r.inspector.Summarize(path)
	if err != nil {
		r.logger.Warn("cannot inspect " + r.rel(path))
		return
	}

	r.logger.Log(domain.LogRecord{
		Level:   domain.LevelInfo,
		Message: "artifact",
		Fields: []domain.Field{
			domain.F("path", r.rel(sum.Path)),
			domain.F("size", sum.Human),
			domain.F("xxhash", sum.Digest),
		},
	})
}

func (r *Runner) check(ctx context.Context, path string) error {
	ctx, span := r.tracer.Start(ctx, string(domain.StageCheck))
	defer span.End()

	report, err := r.inspector.Validate(ctx, path)
	if err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, "artifact validation failed"), "path", r.rel(path))
	}

	span.SetAttribute("exports", report.Exports)
	span.SetAttribute("imports", report.Imports)

	r.logger.Log(domain.LogRecord{
		Level:   domain.LevelInfo,
		Message: "module valid",
		Fields: []domain.Field{
			domain.F("exports", report.Exports),
			domain.F("imports", report.Imports),
			domain.F("memories", report.Memories),
		},
	})
	return nil
}

func (r *Runner) report(label, path string) error {
	out := output.NewReport(r.stdout)
	line := out.String(label).Bold().Foreground(termenv.RGBColor(string(style.Green))).String() + " " + r.rel(path) + "\n"
	if _, err := out.WriteString(line); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

// rel returns path relative to the working directory, or path itself when
// no relative form exists.
func (r *Runner) rel(path string) string {
	if r.workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(r.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

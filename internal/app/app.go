// Package app implements the application layer for wasmbuild.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/wasmbuild/internal/adapters/telemetry" //nolint:depguard // Tracer is chosen per run
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports"
	"go.trai.ch/wasmbuild/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

const tracerName = "wasmbuild"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	inspector    ports.Inspector

	stdout  io.Writer
	stderr  io.Writer
	environ func() []string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	logger ports.Logger,
	inspector ports.Inspector,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       logger,
		inspector:    inspector,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		environ:      os.Environ,
	}
}

// WithOutput sets the writers used for report lines and child output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithEnviron replaces the source of the inherited environment.
func (a *App) WithEnviron(environ func() []string) *App {
	a.environ = environ
	return a
}

// RunOptions configures a single build.
type RunOptions struct {
	Build domain.BuildConfig
	// TargetFromFlag is set when Build.Target was given explicitly and must
	// not be replaced by the project configuration.
	TargetFromFlag bool
}

// Run resolves the project around the working directory, plans the build and
// executes it.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetWorkDir.Error())
	}

	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	cfg := opts.Build
	if !opts.TargetFromFlag && project.Target != "" {
		cfg = cfg.WithTarget(project.Target)
	}

	if cfg.Verbose && project.ConfigPath != "" {
		a.logger.Log(domain.LogRecord{
			Level:   domain.LevelInfo,
			Message: "using " + relativeTo(cwd, project.ConfigPath),
			Fields:  []domain.Field{domain.F("target", cfg.Target)},
		})
	}

	plan := pipeline.BuildPlan(cfg, *project, domain.NewEnvironment(a.environ()))

	tracer := a.newTracer(cfg.Verbose)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	runner := pipeline.NewRunner(a.executor, a.logger, a.inspector, tracer,
		pipeline.WithOutput(a.stdout, a.stderr),
		pipeline.WithWorkDir(cwd),
		pipeline.WithVerbose(cfg.Verbose),
	)

	if _, err := runner.Run(ctx, plan); err != nil {
		var invErr *domain.InvocationError
		if errors.As(err, &invErr) {
			// The tool has already reported on its own stderr.
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return zerr.Wrap(err, "build failed")
	}

	return nil
}

func (a *App) newTracer(verbose bool) ports.Tracer {
	if !verbose {
		return telemetry.NewNoOpTracer()
	}
	return telemetry.NewOTelTracer(tracerName, telemetry.NewBridge(a.logger))
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

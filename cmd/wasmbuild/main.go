// Package main is the entry point for the wasmbuild CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/wasmbuild/cmd/wasmbuild/commands"
	"go.trai.ch/wasmbuild/internal/app"
	"go.trai.ch/wasmbuild/internal/core/domain"
	_ "go.trai.ch/wasmbuild/internal/wiring"
)

// componentProvider resolves the application graph.
type componentProvider func(ctx context.Context) (*app.Components, error)

func main() {
	os.Exit(run(os.Args[1:], resolveComponents))
}

func resolveComponents(ctx context.Context) (*app.Components, error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	return components, err
}

func run(args []string, provide componentProvider, opts ...func(*app.App)) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, err := provide(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildExecutionFailed) {
			var invErr *domain.InvocationError
			if errors.As(err, &invErr) {
				return invErr.Code()
			}
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

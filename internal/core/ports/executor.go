// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/wasmbuild/internal/core/domain"
)

// Executor defines the interface for running external programs.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation and blocks until it exits.
	//
	// The child's standard output goes to stdout unless the invocation
	// redirects it into a file. A nonzero exit status is reported as a
	// *domain.InvocationError somewhere in the returned error chain.
	Execute(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) error
}

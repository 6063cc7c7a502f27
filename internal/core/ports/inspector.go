package ports

import (
	"context"

	"go.trai.ch/wasmbuild/internal/core/domain"
)

// Inspector reads produced artifacts back.
//
//go:generate mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type Inspector interface {
	// Summarize returns the size and content digest of the file at path.
	Summarize(path string) (domain.ArtifactSummary, error)
	// Validate loads the module at path and reports what it imports and exports.
	Validate(ctx context.Context, path string) (domain.ModuleReport, error)
}

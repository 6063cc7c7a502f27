// Package wasm reads built WebAssembly artifacts back for reporting and validation.
package wasm

import (
	"context"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/tetratelabs/wazero"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Inspector implements ports.Inspector.
type Inspector struct {
	config wazero.RuntimeConfig
}

// NewInspector creates an Inspector that validates modules with the wazero
// interpreter, which compiles on every platform.
func NewInspector() *Inspector {
	return &Inspector{
		config: wazero.NewRuntimeConfigInterpreter(),
	}
}

// Summarize returns the size and xxhash64 digest of the file at path.
func (i *Inspector) Summarize(path string) (domain.ArtifactSummary, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the build plan
	if err != nil {
		return domain.ArtifactSummary{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
	}

	size := int64(len(data))
	return domain.ArtifactSummary{
		Path:   path,
		Size:   size,
		Human:  humanize.IBytes(uint64(size)),
		Digest: fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}, nil
}

// Validate compiles the module at path and reports its imports and exports.
func (i *Inspector) Validate(ctx context.Context, path string) (domain.ModuleReport, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the build plan
	if err != nil {
		return domain.ModuleReport{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactReadFailed.Error()), "path", path)
	}

	r := wazero.NewRuntimeWithConfig(ctx, i.config)
	defer func() { _ = r.Close(ctx) }()

	compiled, err := r.CompileModule(ctx, data)
	if err != nil {
		return domain.ModuleReport{}, zerr.With(zerr.Wrap(err, domain.ErrArtifactInvalid.Error()), "path", path)
	}
	defer func() { _ = compiled.Close(ctx) }()

	return domain.ModuleReport{
		Path:     path,
		Exports:  len(compiled.ExportedFunctions()),
		Imports:  len(compiled.ImportedFunctions()),
		Memories: len(compiled.ExportedMemories()),
	}, nil
}

package domain

import (
	"path/filepath"
	"strings"
)

const (
	// WASMExt is the suffix of binary artifacts.
	WASMExt = ".wasm"
	// GCExt replaces WASMExt on the output of the size reduction pass.
	GCExt = ".gc.wasm"
	// WATExt replaces the last suffix on text-format disassemblies.
	WATExt = ".wat"
)

// ArtifactPath returns where cargo writes the binary for an example:
// <root>/target/<target>/<profile>/examples/<example>.wasm. An empty target
// drops its path element, matching cargo's host layout.
func ArtifactPath(root, target, profile, example string) string {
	parts := []string{root, "target"}
	if target != "" {
		parts = append(parts, target)
	}
	parts = append(parts, profile, "examples", example+WASMExt)
	return filepath.Join(parts...)
}

// ReplaceExt swaps the last suffix of path for ext.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// ArtifactSummary describes a binary artifact on disk.
type ArtifactSummary struct {
	Path   string
	Size   int64
	Human  string
	Digest string
}

// ModuleReport describes a validated WebAssembly module.
type ModuleReport struct {
	Path     string
	Exports  int
	Imports  int
	Memories int
}

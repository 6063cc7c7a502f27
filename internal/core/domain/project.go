package domain

const (
	// ManifestFileName marks the project root.
	ManifestFileName = "Cargo.toml"
	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = "wasmbuild.yaml"
	// ConfigVersion is the only config schema version understood.
	ConfigVersion = "1"
	// DebugInfoEnvVar enables debug symbols in optimized cargo builds.
	DebugInfoEnvVar = "CARGO_PROFILE_RELEASE_DEBUG"
)

// Toolchain names the external programs the pipeline drives.
type Toolchain struct {
	Compiler     string
	GC           string
	Disassembler string
}

// DefaultToolchain returns the programs used when no config overrides them.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler:     "cargo",
		GC:           "wasm-gc",
		Disassembler: "wasm2wat",
	}
}

// Project is the resolved project layout and configuration.
type Project struct {
	// Root is the absolute directory the compiler runs in.
	Root string
	// ConfigPath is the config file that was read, if any.
	ConfigPath string
	Toolchain  Toolchain
	// Target overrides DefaultTarget when non-empty.
	Target string
}

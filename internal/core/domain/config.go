package domain

// DefaultTarget is the target triple used when none is configured.
const DefaultTarget = "wasm32-unknown-unknown"

const (
	// ProfileRelease is the cargo output directory for optimized builds.
	ProfileRelease = "release"
	// ProfileDebug is the cargo output directory for unoptimized builds.
	ProfileDebug = "debug"
)

// BuildConfig holds the options of a single run. It is a value type and is
// never mutated after construction; the With* helpers return copies.
type BuildConfig struct {
	// Example restricts the build to one named example and enables artifact
	// tracking. Empty means the whole project is built.
	Example string
	// Target is the target triple passed to the compiler.
	Target string
	// Release requests an optimized build.
	Release bool
	// GC runs the size reduction pass over the artifact.
	GC bool
	// WAT also produces a text-format disassembly.
	WAT bool
	// Verbose prints each invocation before running it.
	Verbose bool
	// Check loads the final artifact to validate it.
	Check bool
}

// DefaultBuildConfig returns the configuration used when no flags are given.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Target:  DefaultTarget,
		Release: true,
		GC:      true,
	}
}

// Profile returns the cargo profile directory name for the build mode.
func (c BuildConfig) Profile() string {
	if c.Release {
		return ProfileRelease
	}
	return ProfileDebug
}

// WithTarget returns a copy of c targeting the given triple.
func (c BuildConfig) WithTarget(target string) BuildConfig {
	c.Target = target
	return c
}

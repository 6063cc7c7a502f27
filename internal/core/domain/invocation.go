package domain

// Stage identifies a step of the build pipeline.
type Stage string

const (
	// StageCompile runs the compiler.
	StageCompile Stage = "compile"
	// StageReduce runs the size reduction tool over the artifact.
	StageReduce Stage = "reduce"
	// StageDisassemble renders the artifact in text format.
	StageDisassemble Stage = "disassemble"
	// StageCheck validates the final artifact.
	StageCheck Stage = "check"
)

// Invocation describes one external process call.
type Invocation struct {
	Stage   Stage
	Program string
	Args    []string
	// Dir is the working directory of the child process.
	Dir string
	// Env is the complete child environment.
	Env Environment
	// Added lists the "KEY=VALUE" entries of Env that were not inherited.
	Added []string
	// Stdout, when set, is the file the child's standard output is written to.
	Stdout string
	// Output is the file the invocation produces, if any.
	Output string
}

// Argv returns the program followed by its arguments.
func (i Invocation) Argv() []string {
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Program)
	return append(argv, i.Args...)
}

// Plan is the ordered set of invocations for one run. All output paths are
// known before anything executes.
type Plan struct {
	Compile     Invocation
	Reduce      *Invocation
	Disassemble *Invocation
	// Artifact is the file the compile stage is expected to produce.
	// It is empty when no example was requested.
	Artifact string
	// Check requests validation of the final artifact.
	Check bool
}

// Invocations returns the planned invocations in execution order.
func (p Plan) Invocations() []Invocation {
	invs := []Invocation{p.Compile}
	if p.Reduce != nil {
		invs = append(invs, *p.Reduce)
	}
	if p.Disassemble != nil {
		invs = append(invs, *p.Disassemble)
	}
	return invs
}

// FinalArtifact returns the binary artifact left after all planned binary
// transformations.
func (p Plan) FinalArtifact() string {
	if p.Reduce != nil {
		return p.Reduce.Output
	}
	return p.Artifact
}

// Result reports the files a completed run produced.
type Result struct {
	WASM string
	WAT  string
}

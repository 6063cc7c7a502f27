// Package pipeline turns a BuildConfig into an ordered set of external
// invocations and runs them.
package pipeline

import (
	"go.trai.ch/wasmbuild/internal/core/domain"
)

// disassembleFlags are passed to the disassembler after the input path.
var disassembleFlags = []string{
	"--ignore-custom-section-errors",
	"--fold-exprs",
	"--generate-names",
	"--inline-exports",
	"--no-check",
}

// BuildPlan derives the invocations for one run. It is pure: base is only
// read, and every output path is fixed before anything executes.
func BuildPlan(cfg domain.BuildConfig, project domain.Project, base domain.Environment) domain.Plan {
	tools := withDefaults(project.Toolchain)

	var plan domain.Plan
	if cfg.Example != "" {
		plan.Artifact = domain.ArtifactPath(project.Root, cfg.Target, cfg.Profile(), cfg.Example)
	}

	plan.Compile = compileInvocation(cfg, project.Root, tools.Compiler, base, plan.Artifact)

	if plan.Artifact == "" {
		return plan
	}

	current := plan.Artifact
	if cfg.GC {
		reduced := domain.ReplaceExt(current, domain.GCExt)
		plan.Reduce = &domain.Invocation{
			Stage:   domain.StageReduce,
			Program: tools.GC,
			Args:    []string{current, reduced},
			Dir:     project.Root,
			Env:     base,
			Output:  reduced,
		}
		current = reduced
	}

	if cfg.WAT {
		wat := domain.ReplaceExt(current, domain.WATExt)
		args := make([]string, 0, len(disassembleFlags)+1)
		args = append(args, current)
		args = append(args, disassembleFlags...)
		plan.Disassemble = &domain.Invocation{
			Stage:   domain.StageDisassemble,
			Program: tools.Disassembler,
			Args:    args,
			Dir:     project.Root,
			Env:     base,
			Stdout:  wat,
			Output:  wat,
		}
	}

	plan.Check = cfg.Check
	return plan
}

func compileInvocation(
	cfg domain.BuildConfig,
	root, program string,
	base domain.Environment,
	artifact string,
) domain.Invocation {
	args := []string{"build", "--no-default-features"}
	if cfg.Target != "" {
		args = append(args, "--target", cfg.Target)
	}

	env := base
	if cfg.Release {
		args = append(args, "--release")
		env = base.WithDefault(domain.DebugInfoEnvVar, "true")
	}

	if cfg.Example != "" {
		args = append(args, "--example", cfg.Example)
	}

	return domain.Invocation{
		Stage:   domain.StageCompile,
		Program: program,
		Args:    args,
		Dir:     root,
		Env:     env,
		Added:   env.Added(base),
		Output:  artifact,
	}
}

func withDefaults(t domain.Toolchain) domain.Toolchain {
	def := domain.DefaultToolchain()
	if t.Compiler == "" {
		t.Compiler = def.Compiler
	}
	if t.GC == "" {
		t.GC = def.GC
	}
	if t.Disassembler == "" {
		t.Disassembler = def.Disassembler
	}
	return t
}

package domain_test

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestDefaultBuildConfig(t *testing.T) {
	cfg := domain.DefaultBuildConfig()

	assert.Empty(t, cfg.Example)
	assert.Equal(t, "wasm32-unknown-unknown", cfg.Target)
	assert.True(t, cfg.Release)
	assert.True(t, cfg.GC)
	assert.False(t, cfg.WAT)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Check)
	assert.Equal(t, domain.ProfileRelease, cfg.Profile())
}

func TestBuildConfig_WithTarget(t *testing.T) {
	cfg := domain.DefaultBuildConfig()
	other := cfg.WithTarget("wasm32-wasip1")

	assert.Equal(t, domain.DefaultTarget, cfg.Target)
	assert.Equal(t, "wasm32-wasip1", other.Target)
}

func TestArtifactPath(t *testing.T) {
	root := filepath.FromSlash("/work/proj")

	tests := []struct {
		name     string
		target   string
		profile  string
		expected string
	}{
		{
			name:     "release",
			target:   domain.DefaultTarget,
			profile:  domain.ProfileRelease,
			expected: "/work/proj/target/wasm32-unknown-unknown/release/examples/foo.wasm",
		},
		{
			name:     "debug",
			target:   domain.DefaultTarget,
			profile:  domain.ProfileDebug,
			expected: "/work/proj/target/wasm32-unknown-unknown/debug/examples/foo.wasm",
		},
		{
			name:     "host layout",
			target:   "",
			profile:  domain.ProfileRelease,
			expected: "/work/proj/target/release/examples/foo.wasm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ArtifactPath(root, tt.target, tt.profile, "foo")
			assert.Equal(t, filepath.FromSlash(tt.expected), got)
		})
	}
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "out/foo.gc.wasm", domain.ReplaceExt("out/foo.wasm", domain.GCExt))
	assert.Equal(t, "out/foo.gc.wat", domain.ReplaceExt("out/foo.gc.wasm", domain.WATExt))
	assert.Equal(t, "out/foo.wat", domain.ReplaceExt("out/foo.wasm", domain.WATExt))
	assert.Equal(t, "noext.wat", domain.ReplaceExt("noext", domain.WATExt))
}

func TestQuoteCommand_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{name: "plain", argv: []string{"cargo", "build", "--release"}},
		{name: "spaces", argv: []string{"wasm-gc", "/tmp/my dir/a.wasm", "/tmp/my dir/a.gc.wasm"}},
		{name: "quotes", argv: []string{"echo", `it's`, `say "hi"`}},
		{name: "shell metacharacters", argv: []string{"echo", "$HOME", "a;b", "*", "`x`"}},
		{name: "empty argument", argv: []string{"echo", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted := domain.QuoteCommand(tt.argv)

			split, err := shellquote.Split(quoted)
			require.NoError(t, err)
			assert.Equal(t, tt.argv, split)
		})
	}
}

func TestQuoteCommand_PlainArgsUnchanged(t *testing.T) {
	assert.Equal(t, "cargo build --no-default-features", domain.QuoteCommand([]string{"cargo", "build", "--no-default-features"}))
}

func TestPlan_Invocations(t *testing.T) {
	plan := domain.Plan{
		Compile:  domain.Invocation{Stage: domain.StageCompile, Program: "cargo"},
		Artifact: "a.wasm",
	}
	assert.Len(t, plan.Invocations(), 1)
	assert.Equal(t, "a.wasm", plan.FinalArtifact())

	plan.Reduce = &domain.Invocation{Stage: domain.StageReduce, Program: "wasm-gc", Output: "a.gc.wasm"}
	plan.Disassemble = &domain.Invocation{Stage: domain.StageDisassemble, Program: "wasm2wat"}

	stages := make([]domain.Stage, 0, 3)
	for _, inv := range plan.Invocations() {
		stages = append(stages, inv.Stage)
	}
	assert.Equal(t, []domain.Stage{domain.StageCompile, domain.StageReduce, domain.StageDisassemble}, stages)
	assert.Equal(t, "a.gc.wasm", plan.FinalArtifact())
}

func TestInvocation_Argv(t *testing.T) {
	inv := domain.Invocation{Program: "cargo", Args: []string{"build"}}
	assert.Equal(t, []string{"cargo", "build"}, inv.Argv())
}

func TestInvocationError(t *testing.T) {
	cause := &exec.ExitError{}
	invErr := &domain.InvocationError{Program: "cargo", ExitCode: 101, Err: cause}

	assert.Equal(t, "cargo exited with status 101", invErr.Error())
	assert.Equal(t, 101, invErr.Code())
	assert.ErrorIs(t, invErr, cause)

	wrapped := zerr.With(zerr.Wrap(invErr, "command failed"), "exit_code", 101)
	var target *domain.InvocationError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "cargo", target.Program)
}

func TestInvocationError_SignalMapsToOne(t *testing.T) {
	invErr := &domain.InvocationError{Program: "wasm-gc", ExitCode: -1, Err: errors.New("signal: killed")}
	assert.Equal(t, 1, invErr.Code())
}

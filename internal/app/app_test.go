package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wasmbuild/internal/app"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	executor  *mocks.MockExecutor
	logger    *mocks.MockLogger
	inspector *mocks.MockInspector
	stdout    *bytes.Buffer
	app       *app.App
	cwd       string
}

func newFixture(t *testing.T, environ ...string) *fixture {
	t.Helper()

	t.Chdir(t.TempDir())
	cwd, err := os.Getwd()
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		inspector: mocks.NewMockInspector(ctrl),
		stdout:    &bytes.Buffer{},
		cwd:       cwd,
	}
	f.app = app.New(f.loader, f.executor, f.logger, f.inspector).
		WithOutput(f.stdout, io.Discard).
		WithEnviron(func() []string { return environ })
	return f
}

func (f *fixture) project() *domain.Project {
	return &domain.Project{Root: f.cwd, Toolchain: domain.DefaultToolchain()}
}

func TestApp_Run_WholeProject(t *testing.T) {
	f := newFixture(t, "PATH=/usr/bin")

	f.loader.EXPECT().Load(f.cwd).Return(f.project(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation, _, _ io.Writer) error {
			assert.Equal(t, domain.StageCompile, inv.Stage)
			assert.Equal(t, f.cwd, inv.Dir)
			assert.Equal(t, []string{"CARGO_PROFILE_RELEASE_DEBUG=true", "PATH=/usr/bin"}, inv.Env.Entries())
			return nil
		})

	err := f.app.Run(context.Background(), app.RunOptions{Build: domain.DefaultBuildConfig()})
	require.NoError(t, err)
	assert.Empty(t, f.stdout.String())
}

func TestApp_Run_Example(t *testing.T) {
	f := newFixture(t)

	cfg := domain.DefaultBuildConfig()
	cfg.Example = "demo"

	f.loader.EXPECT().Load(f.cwd).Return(f.project(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{Build: cfg})
	require.NoError(t, err)

	want := "Output WASM: " + filepath.Join("target", domain.DefaultTarget, "release", "examples", "demo.gc.wasm") + "\n"
	assert.Equal(t, want, f.stdout.String())
}

func TestApp_Run_TargetPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		fromFlag bool
		flag     string
		want     string
	}{
		{name: "config target applies", fromFlag: false, flag: domain.DefaultTarget, want: "wasm32-wasip1"},
		{name: "flag wins", fromFlag: true, flag: "wasm32-unknown-emscripten", want: "wasm32-unknown-emscripten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			p := f.project()
			p.Target = "wasm32-wasip1"
			f.loader.EXPECT().Load(f.cwd).Return(p, nil)

			f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv domain.Invocation, _, _ io.Writer) error {
					assert.Equal(t, []string{
						"build", "--no-default-features", "--target", tt.want, "--release",
					}, inv.Args)
					return nil
				})

			cfg := domain.DefaultBuildConfig().WithTarget(tt.flag)
			err := f.app.Run(context.Background(), app.RunOptions{Build: cfg, TargetFromFlag: tt.fromFlag})
			require.NoError(t, err)
		})
	}
}

func TestApp_Run_ConfigLoaderError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(f.cwd).Return(nil, zerr.Wrap(errors.New("bad yaml"), domain.ErrConfigParseFailed.Error()))

	err := f.app.Run(context.Background(), app.RunOptions{Build: domain.DefaultBuildConfig()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_ToolFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(f.cwd).Return(f.project(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(&domain.InvocationError{Program: "cargo", ExitCode: 101}, "command failed"))

	err := f.app.Run(context.Background(), app.RunOptions{Build: domain.DefaultBuildConfig()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)

	var invErr *domain.InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, 101, invErr.Code())
}

func TestApp_Run_StartFailureIsNotSilent(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(f.cwd).Return(f.project(), nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.Wrap(errors.New("executable file not found"), domain.ErrCommandStartFailed.Error()))

	err := f.app.Run(context.Background(), app.RunOptions{Build: domain.DefaultBuildConfig()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Run_VerboseReportsStages(t *testing.T) {
	f := newFixture(t)

	p := f.project()
	p.ConfigPath = filepath.Join(f.cwd, domain.ConfigFileName)
	f.loader.EXPECT().Load(f.cwd).Return(p, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var records []domain.LogRecord
	f.logger.EXPECT().Log(gomock.Any()).Do(func(rec domain.LogRecord) {
		records = append(records, rec)
	}).AnyTimes()

	cfg := domain.DefaultBuildConfig()
	cfg.Verbose = true

	err := f.app.Run(context.Background(), app.RunOptions{Build: cfg})
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "using wasmbuild.yaml", records[0].Message)
	assert.Equal(t, "$ cargo build --no-default-features --target wasm32-unknown-unknown --release", records[1].Message)
	assert.Equal(t, "stage finished", records[2].Message)
	assert.Equal(t, domain.F("stage", "compile"), records[2].Fields[0])
}

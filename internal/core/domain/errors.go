package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrBuildExecutionFailed is returned when one of the pipeline stages fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrEmptyCommand is returned when an invocation has no program to run.
	ErrEmptyCommand = zerr.New("invocation has no program")

	// ErrCommandStartFailed is returned when an external program cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrRedirectFailed is returned when the stdout redirect file cannot be created.
	ErrRedirectFailed = zerr.New("failed to create output file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file declares an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrFailedToGetWorkDir is returned when the current working directory cannot be determined.
	ErrFailedToGetWorkDir = zerr.New("failed to get working directory")

	// ErrArtifactReadFailed is returned when a produced artifact cannot be read back.
	ErrArtifactReadFailed = zerr.New("failed to read artifact")

	// ErrArtifactInvalid is returned when an artifact is not a loadable WebAssembly module.
	ErrArtifactInvalid = zerr.New("artifact is not a valid WebAssembly module")
)

// InvocationError reports an external program that exited with a nonzero status.
type InvocationError struct {
	Program  string
	ExitCode int
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Program, e.ExitCode)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Code returns the exit code to surface to the caller. Abnormal terminations
// (signals) report -1 from os/exec and are mapped to 1.
func (e *InvocationError) Code() int {
	if e.ExitCode <= 0 {
		return 1
	}
	return e.ExitCode
}

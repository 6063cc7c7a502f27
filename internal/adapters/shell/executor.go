// Package shell provides an os/exec based executor for pipeline invocations.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	stdin io.Reader
}

// NewExecutor creates a new Executor whose children inherit os.Stdin.
func NewExecutor() *Executor {
	return &Executor{
		stdin: os.Stdin,
	}
}

// Execute runs the invocation and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, inv domain.Invocation, stdout, stderr io.Writer) (err error) {
	if inv.Program == "" {
		return zerr.With(domain.ErrEmptyCommand, "stage", string(inv.Stage))
	}

	env := inv.Env.Entries()

	// Resolve the executable against the child's PATH rather than ours.
	executable := inv.Program
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, lookErr := lookPath(executable, env); lookErr == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, inv.Args...) //nolint:gosec // arguments are built by the planner
	cmd.Args[0] = inv.Program
	cmd.Dir = inv.Dir
	cmd.Env = env
	cmd.Stdin = e.stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if inv.Stdout != "" {
		f, createErr := os.Create(inv.Stdout)
		if createErr != nil {
			return zerr.With(zerr.Wrap(createErr, domain.ErrRedirectFailed.Error()), "path", inv.Stdout)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = zerr.With(zerr.Wrap(closeErr, domain.ErrRedirectFailed.Error()), "path", inv.Stdout)
			}
		}()
		cmd.Stdout = f
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "program", inv.Program)
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		invErr := &domain.InvocationError{Program: inv.Program, ExitCode: exitCode, Err: err}
		return zerr.With(zerr.Wrap(invErr, "command failed"), "exit_code", exitCode)
	}

	return nil
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

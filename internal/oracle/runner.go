package oracle

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// exitNotFound is reported when the command could not be started at all.
const exitNotFound = 127

// Runner abstracts process execution for package manager commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, exitCode int, err error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run executes name with args and captures stdout, stderr and the exit code.
// A non-zero exit returns a non-nil error alongside the captured output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), err
	}

	exitCode := 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = exitNotFound
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

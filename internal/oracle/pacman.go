package oracle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// DefaultBinary is the package manager looked up on PATH when no path is configured.
const DefaultBinary = "pacman"

// Every mutating command runs without interactive confirmation.
const noConfirm = "--noconfirm"

// PacmanConfig configures a Pacman oracle.
type PacmanConfig struct {
	// Path is the pacman binary; empty means look up DefaultBinary on PATH.
	Path   string
	Runner Runner
	// LookPath resolves binaries; defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Pacman implements PackageOracle on top of the pacman CLI.
type Pacman struct {
	path   string
	runner Runner
}

// NewPacman resolves the pacman binary. A missing binary wraps ErrOracleMissing.
func NewPacman(cfg PacmanConfig) (*Pacman, error) {
	lookPath := cfg.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	name := strings.TrimSpace(cfg.Path)
	if name == "" {
		name = DefaultBinary
	}
	path, err := lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.OracleMissingFmt, ErrOracleMissing, name, err)
	}

	runner := cfg.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Pacman{path: path, runner: runner}, nil
}

// Path returns the resolved pacman binary.
func (p *Pacman) Path() string {
	return p.path
}

// IsInstalled runs `pacman -Q name`. Any non-zero exit means absent.
func (p *Pacman) IsInstalled(ctx context.Context, name string) bool {
	_, _, exitCode, err := p.run(ctx, "-Q", name)
	return err == nil && exitCode == 0
}

// RefreshCache runs `pacman -Sy`.
func (p *Pacman) RefreshCache(ctx context.Context) error {
	return p.mutate(ctx, CacheRefreshFailed, "", "-Sy")
}

// Install runs `pacman -U` for local files and `pacman -S` otherwise.
func (p *Pacman) Install(ctx context.Context, name string, sourceFile string) error {
	if sourceFile != "" {
		return p.mutate(ctx, InstallFailed, name, "-U", noConfirm, sourceFile)
	}
	return p.mutate(ctx, InstallFailed, name, "-S", noConfirm, name)
}

// Remove runs `pacman -R`, or `pacman -Rs` to cascade to unneeded dependencies.
func (p *Pacman) Remove(ctx context.Context, name string, recurse bool) error {
	op := "-R"
	if recurse {
		op = "-Rs"
	}
	return p.mutate(ctx, RemoveFailed, name, op, noConfirm, name)
}

func (p *Pacman) mutate(ctx context.Context, kind Kind, pkg string, args ...string) error {
	stdout, stderr, exitCode, err := p.run(ctx, args...)
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Package: pkg,
		Detail: fmt.Sprintf(
			messages.OracleCommandDetailFmt,
			p.path,
			strings.Join(args, " "),
			exitCode,
			strings.TrimSpace(string(stdout)),
			strings.TrimSpace(string(stderr)),
		),
		Err: err,
	}
}

func (p *Pacman) run(ctx context.Context, args ...string) ([]byte, []byte, int, error) {
	if p.runner == nil {
		return nil, nil, exitNotFound, errors.New(messages.OracleRunnerRequired)
	}
	stdout, stderr, exitCode, err := p.runner.Run(ctx, p.path, args...)
	log.Debug().
		Str("cmd", p.path).
		Strs("args", args).
		Int("exit", exitCode).
		Msg("pacman exec")
	return stdout, stderr, exitCode, err
}

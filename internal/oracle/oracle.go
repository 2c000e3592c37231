// Package oracle wraps the host package manager. It is the only code that
// inspects or changes installed packages.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// PackageOracle answers installed-package queries and performs package mutations.
type PackageOracle interface {
	// IsInstalled reports whether name is installed. A failed query means not installed.
	IsInstalled(ctx context.Context, name string) bool
	RefreshCache(ctx context.Context) error
	// Install installs name, from sourceFile when it is not empty.
	Install(ctx context.Context, name string, sourceFile string) error
	// Remove removes name, and its no-longer-needed dependencies when recurse is set.
	Remove(ctx context.Context, name string, recurse bool) error
}

// Sentinels matched with errors.Is against an *Error.
var (
	ErrCacheRefreshFailed = errors.New(messages.OracleCacheRefreshLabel)
	ErrInstallFailed      = errors.New(messages.OracleInstallLabel)
	ErrRemoveFailed       = errors.New(messages.OracleRemoveLabel)

	// ErrOracleMissing is a configuration error: the package manager binary is not available.
	ErrOracleMissing = errors.New("package manager not available")
)

// Kind classifies a failed package manager mutation.
type Kind int

// Failure kinds.
const (
	CacheRefreshFailed Kind = iota + 1
	InstallFailed
	RemoveFailed
)

func (k Kind) sentinel() error {
	switch k {
	case InstallFailed:
		return ErrInstallFailed
	case RemoveFailed:
		return ErrRemoveFailed
	default:
		return ErrCacheRefreshFailed
	}
}

// Error describes a failed mutation. Package is empty for cache refreshes.
type Error struct {
	Kind    Kind
	Package string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Package == "" {
		return fmt.Sprintf(messages.OracleErrorFmt, e.Kind.sentinel(), e.Detail)
	}
	return fmt.Sprintf(messages.OracleErrorPackageFmt, e.Kind.sentinel(), e.Package, e.Detail)
}

// Unwrap exposes the kind sentinel and the underlying process error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

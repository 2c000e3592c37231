// Package desired models the package state pkgstate reconciles a host toward.
package desired

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// ErrInvalid wraps every desired-state validation failure so callers can
// distinguish configuration problems from package manager failures.
var ErrInvalid = errors.New("invalid desired state")

// TargetState is the state every declared package should end up in.
type TargetState int

const (
	// Present means every declared package should be installed.
	Present TargetState = iota
	// Absent means every declared package should be removed.
	Absent
)

// ParseTargetState normalizes present/installed and absent/removed.
// An empty value defaults to Present.
func ParseTargetState(raw string) (TargetState, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "present", "installed":
		return Present, nil
	case "absent", "removed":
		return Absent, nil
	default:
		return Present, fmt.Errorf("%w: "+messages.ConfigInvalidStateFmt, ErrInvalid, raw)
	}
}

// String returns the canonical spelling used in config files and JSON output.
func (s TargetState) String() string {
	if s == Absent {
		return "absent"
	}
	return "present"
}

// DesiredState is one reconciliation request. It is not modified by the reconciler.
type DesiredState struct {
	// Packages keeps declaration order; processing and failure attribution follow it.
	Packages     []PackageSpec
	Target       TargetState
	Recurse      bool
	RefreshCache bool
}

// Validate reports a configuration error when there is nothing to do.
func (d DesiredState) Validate() error {
	if len(d.Packages) == 0 && !d.RefreshCache {
		return fmt.Errorf("%w: %s", ErrInvalid, messages.ConfigNothingRequested)
	}
	for _, pkg := range d.Packages {
		if strings.TrimSpace(pkg.Name) == "" {
			return fmt.Errorf("%w: %s", ErrInvalid, messages.ConfigEmptyPackageName)
		}
	}
	return nil
}

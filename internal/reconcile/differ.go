package reconcile

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/conn-castle/pkgstate/internal/desired"
	"github.com/conn-castle/pkgstate/internal/oracle"
)

// PackageStatus is the oracle's answer for one package at one point in time.
type PackageStatus struct {
	Spec      desired.PackageSpec
	Installed bool
}

// NeedsAction reports whether status differs from target.
func NeedsAction(status PackageStatus, target desired.TargetState) bool {
	if target == desired.Absent {
		return status.Installed
	}
	return !status.Installed
}

// StateDiffer classifies declared packages against live oracle state.
type StateDiffer struct {
	oracle oracle.PackageOracle
}

// NewStateDiffer returns a differ querying o.
func NewStateDiffer(o oracle.PackageOracle) StateDiffer {
	return StateDiffer{oracle: o}
}

// Classify queries every package in declared order. Results are never cached;
// each call re-queries the oracle.
func (d StateDiffer) Classify(ctx context.Context, packages []desired.PackageSpec, target desired.TargetState) []PackageStatus {
	statuses := make([]PackageStatus, 0, len(packages))
	for _, spec := range packages {
		status := PackageStatus{Spec: spec, Installed: d.oracle.IsInstalled(ctx, spec.Name)}
		log.Debug().
			Str("package", spec.Name).
			Bool("installed", status.Installed).
			Bool("needs_action", NeedsAction(status, target)).
			Msg("classified")
		statuses = append(statuses, status)
	}
	return statuses
}

// Pending filters statuses down to the packages that need action for target.
func Pending(statuses []PackageStatus, target desired.TargetState) []PackageStatus {
	pending := []PackageStatus{}
	for _, status := range statuses {
		if NeedsAction(status, target) {
			pending = append(pending, status)
		}
	}
	return pending
}

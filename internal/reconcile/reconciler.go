// Package reconcile drives a host toward a desired package state through a
// PackageOracle, one package at a time in declared order.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/conn-castle/pkgstate/internal/desired"
	"github.com/conn-castle/pkgstate/internal/messages"
	"github.com/conn-castle/pkgstate/internal/oracle"
)

// ConfirmFunc is asked before the first mutation of an apply run.
// Returning false stops the run without changing anything.
type ConfirmFunc func(target desired.TargetState, pending []PackageStatus) (bool, error)

// Option customizes a Reconciler.
type Option func(*Reconciler)

// WithConfirm installs a confirmation hook for apply runs.
func WithConfirm(fn ConfirmFunc) Option {
	return func(r *Reconciler) {
		r.confirm = fn
	}
}

// Reconciler orchestrates cache refresh, classification and mutation.
type Reconciler struct {
	oracle  oracle.PackageOracle
	differ  StateDiffer
	confirm ConfirmFunc
}

// New returns a Reconciler backed by o.
func New(o oracle.PackageOracle, opts ...Option) *Reconciler {
	r := &Reconciler{oracle: o, differ: NewStateDiffer(o)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reconciles state. In check mode nothing is mutated and the cache is not refreshed.
// The first failed operation ends the run; earlier changes are kept.
func (r *Reconciler) Run(ctx context.Context, state desired.DesiredState, checkMode bool) Outcome {
	if state.RefreshCache && !checkMode {
		log.Info().Msg("refreshing package cache")
		if err := r.oracle.RefreshCache(ctx); err != nil {
			return failed(messages.ReconcileCacheRefreshError, "", err, nil)
		}
	}

	if len(state.Packages) == 0 {
		switch {
		case state.RefreshCache && checkMode:
			return Outcome{Changed: true, Message: messages.ReconcileCacheWouldUpdate}
		case state.RefreshCache:
			return Outcome{Changed: true, Message: messages.ReconcileCacheUpdated}
		default:
			return Outcome{Message: messages.ReconcileNothingDeclared}
		}
	}

	statuses := r.differ.Classify(ctx, state.Packages, state.Target)
	pending := Pending(statuses, state.Target)

	if checkMode {
		return checkOutcome(statuses, pending, state.Target)
	}
	if len(pending) == 0 {
		return alreadyOutcome(statuses, state.Target)
	}

	if r.confirm != nil {
		ok, err := r.confirm(state.Target, pending)
		if err != nil {
			return Outcome{
				Message: fmt.Sprintf(messages.ReconcileConfirmFailedFmt, err),
				Failure: &Failure{Detail: err.Error()},
				Diff:    unchangedDiff(statuses),
			}
		}
		if !ok {
			return Outcome{Message: messages.ReconcileAborted, Diff: unchangedDiff(statuses)}
		}
	}

	if state.Target == desired.Absent {
		return r.removeAll(ctx, statuses, pending, state.Recurse)
	}
	return r.installAll(ctx, statuses, pending)
}

func (r *Reconciler) installAll(ctx context.Context, statuses []PackageStatus, pending []PackageStatus) Outcome {
	// present holds everything installed after the run, including packages an
	// earlier install pulled in; count covers only the installs issued here.
	present := map[string]bool{}
	count := 0
	for _, status := range pending {
		spec := status.Spec
		if present[spec.Name] || r.oracle.IsInstalled(ctx, spec.Name) {
			log.Info().Str("package", spec.Name).Msg("already installed")
			present[spec.Name] = true
			continue
		}
		log.Info().Str("package", spec.Name).Str("source", spec.SourceFile).Msg("installing")
		if err := r.oracle.Install(ctx, spec.Name, spec.SourceFile); err != nil {
			msg := fmt.Sprintf(messages.ReconcileInstallFailedFmt, spec.Name)
			outcome := failed(msg, spec.Name, err, appliedDiff(statuses, present, nil))
			outcome.Changed = count > 0
			outcome.Count = count
			return outcome
		}
		present[spec.Name] = true
		count++
	}
	if count == 0 {
		outcome := alreadyOutcome(statuses, desired.Present)
		outcome.Diff = appliedDiff(statuses, present, nil)
		return outcome
	}
	return Outcome{
		Changed: true,
		Count:   count,
		Message: fmt.Sprintf(messages.ReconcileInstalledFmt, count),
		Diff:    appliedDiff(statuses, present, nil),
	}
}

func (r *Reconciler) removeAll(ctx context.Context, statuses []PackageStatus, pending []PackageStatus, recurse bool) Outcome {
	gone := map[string]bool{}
	count := 0
	for _, status := range pending {
		name := status.Spec.Name
		// An earlier recursive removal may already have taken this package.
		if gone[name] || !r.oracle.IsInstalled(ctx, name) {
			log.Info().Str("package", name).Msg("already removed")
			gone[name] = true
			continue
		}
		log.Info().Str("package", name).Bool("recurse", recurse).Msg("removing")
		if err := r.oracle.Remove(ctx, name, recurse); err != nil {
			msg := fmt.Sprintf(messages.ReconcileRemoveFailedFmt, name)
			outcome := failed(msg, name, err, appliedDiff(statuses, nil, gone))
			outcome.Changed = count > 0
			outcome.Count = count
			return outcome
		}
		gone[name] = true
		count++
	}
	if count == 0 {
		outcome := alreadyOutcome(statuses, desired.Absent)
		outcome.Diff = appliedDiff(statuses, nil, gone)
		return outcome
	}
	return Outcome{
		Changed: true,
		Count:   count,
		Message: fmt.Sprintf(messages.ReconcileRemovedFmt, count),
		Diff:    appliedDiff(statuses, nil, gone),
	}
}

func checkOutcome(statuses []PackageStatus, pending []PackageStatus, target desired.TargetState) Outcome {
	if len(pending) == 0 {
		return alreadyOutcome(statuses, target)
	}
	// Duplicate declarations are one change.
	changed := map[string]bool{}
	for _, status := range pending {
		changed[status.Spec.Name] = true
	}
	verb := messages.ReconcileVerbInstalled
	diff := appliedDiff(statuses, changed, nil)
	if target == desired.Absent {
		verb = messages.ReconcileVerbRemoved
		diff = appliedDiff(statuses, nil, changed)
	}
	return Outcome{
		Changed: true,
		Count:   len(changed),
		Message: fmt.Sprintf(messages.ReconcileWouldBeFmt, len(changed), verb),
		Diff:    diff,
	}
}

func alreadyOutcome(statuses []PackageStatus, target desired.TargetState) Outcome {
	word := messages.ReconcileStateInstalled
	if target == desired.Absent {
		word = messages.ReconcileStateAbsent
	}
	return Outcome{
		Message: fmt.Sprintf(messages.ReconcileAlreadyFmt, word),
		Diff:    unchangedDiff(statuses),
	}
}

func failed(msg string, pkg string, err error, diff *Diff) Outcome {
	detail := err.Error()
	var oracleErr *oracle.Error
	if errors.As(err, &oracleErr) && oracleErr.Detail != "" {
		detail = oracleErr.Detail
	}
	log.Error().Str("package", pkg).Str("detail", detail).Msg(msg)
	return Outcome{
		Message: msg,
		Failure: &Failure{Package: pkg, Detail: detail},
		Diff:    diff,
	}
}

func unchangedDiff(statuses []PackageStatus) *Diff {
	return appliedDiff(statuses, nil, nil)
}

// appliedDiff derives before/after installed lists from the classification plus
// the packages that were (or would be) installed or removed.
func appliedDiff(statuses []PackageStatus, installed map[string]bool, removed map[string]bool) *Diff {
	diff := &Diff{Before: []string{}, After: []string{}}
	for _, status := range statuses {
		name := status.Spec.Name
		if status.Installed {
			diff.Before = append(diff.Before, name)
		}
		if (status.Installed || installed[name]) && !removed[name] {
			diff.After = append(diff.After, name)
		}
	}
	return diff
}

package reconcile

// Failure names the package whose operation stopped the run.
// Package is empty when the cache refresh failed.
type Failure struct {
	Package string
	Detail  string
}

// Diff lists the declared packages installed before the run and after it
// (or, in check mode, after it would have run), in declared order.
type Diff struct {
	Before []string
	After  []string
}

// Outcome is the single result of one reconciliation run.
type Outcome struct {
	Changed bool
	Count   int
	Message string
	Failure *Failure
	Diff    *Diff
}

// Failed reports whether the run stopped on an error.
func (o Outcome) Failed() bool {
	return o.Failure != nil
}

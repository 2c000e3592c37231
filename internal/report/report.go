// Package report renders reconciliation outcomes for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/pkgstate/internal/messages"
	"github.com/conn-castle/pkgstate/internal/reconcile"
)

// Exit codes for a finished run. Configuration errors exit 1 through the CLI.
const (
	ExitOK     = 0
	ExitFailed = 2
)

// Options controls how an outcome is written.
type Options struct {
	JSON  bool
	Diff  bool
	Color bool
}

// ExitCode maps an outcome to the process exit code.
func ExitCode(outcome reconcile.Outcome) int {
	if outcome.Failed() {
		return ExitFailed
	}
	return ExitOK
}

// Emit writes outcome to w.
func Emit(w io.Writer, outcome reconcile.Outcome, opts Options) error {
	if opts.JSON {
		return emitJSON(w, outcome, opts.Diff)
	}
	return emitText(w, outcome, opts)
}

func emitText(w io.Writer, outcome reconcile.Outcome, opts Options) error {
	if opts.Diff {
		if diff := RenderDiff(outcome.Diff); diff != "" {
			if _, err := fmt.Fprint(w, diff); err != nil {
				return err
			}
		}
	}

	var line *color.Color
	var text string
	switch {
	case outcome.Failed():
		line = color.New(color.FgRed)
		text = fmt.Sprintf(messages.ReconcileResultFailedFmt, outcome.Message)
	case outcome.Changed:
		line = color.New(color.FgYellow)
		text = fmt.Sprintf(messages.ReconcileResultChangedFmt, outcome.Message)
	default:
		line = color.New(color.FgGreen)
		text = fmt.Sprintf(messages.ReconcileResultOKFmt, outcome.Message)
	}
	if opts.Color {
		line.EnableColor()
	} else {
		line.DisableColor()
	}
	if _, err := line.Fprintln(w, text); err != nil {
		return err
	}
	if outcome.Failed() && outcome.Failure.Detail != "" {
		if _, err := fmt.Fprintf(w, messages.ReconcileResultDetailFmt+"\n", outcome.Failure.Detail); err != nil {
			return err
		}
	}
	return nil
}

// RenderDiff returns a unified diff of the installed declared packages, or ""
// when nothing changed.
func RenderDiff(diff *reconcile.Diff) string {
	if diff == nil {
		return ""
	}
	return udiff.Unified(
		messages.ReconcileDiffBeforeLabel,
		messages.ReconcileDiffAfterLabel,
		lines(diff.Before),
		lines(diff.After),
	)
}

func lines(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, "\n") + "\n"
}

type jsonDiff struct {
	Before []string `json:"before"`
	After  []string `json:"after"`
}

type jsonOutcome struct {
	Changed bool      `json:"changed"`
	Count   int       `json:"count"`
	Msg     string    `json:"msg"`
	Failed  bool      `json:"failed"`
	Package string    `json:"package,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	Diff    *jsonDiff `json:"diff,omitempty"`
}

func emitJSON(w io.Writer, outcome reconcile.Outcome, withDiff bool) error {
	out := jsonOutcome{
		Changed: outcome.Changed,
		Count:   outcome.Count,
		Msg:     outcome.Message,
		Failed:  outcome.Failed(),
	}
	if outcome.Failure != nil {
		out.Package = outcome.Failure.Package
		out.Detail = outcome.Failure.Detail
	}
	if withDiff && outcome.Diff != nil {
		out.Diff = &jsonDiff{Before: outcome.Diff.Before, After: outcome.Diff.After}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

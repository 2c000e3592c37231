// Package prompt asks the user to approve planned package changes.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/pkgstate/internal/desired"
	"github.com/conn-castle/pkgstate/internal/messages"
	"github.com/conn-castle/pkgstate/internal/reconcile"
	"github.com/conn-castle/pkgstate/internal/terminal"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// Confirmer shows the pending changes and asks for a yes/no answer.
type Confirmer struct {
	out        io.Writer
	isTerminal func() bool
}

// NewConfirmer writes the plan to out and prompts on the controlling terminal.
func NewConfirmer(out io.Writer) *Confirmer {
	return &Confirmer{out: out, isTerminal: terminal.IsInteractive}
}

// Confirm implements reconcile.ConfirmFunc. Esc or Ctrl+C counts as "no".
func (c *Confirmer) Confirm(target desired.TargetState, pending []reconcile.PackageStatus) (bool, error) {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, errors.New(messages.ConfirmRequiresTerm)
	}

	verb := "Install"
	sign := "+"
	if target == desired.Absent {
		verb = "Remove"
		sign = "-"
	}
	_, _ = fmt.Fprintln(c.out, messages.ConfirmPlanHeader)
	for _, status := range pending {
		_, _ = fmt.Fprintf(c.out, messages.ConfirmPlanLineFmt, sign, status.Spec)
	}

	approved := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(messages.ConfirmPromptFmt, verb, len(pending))).
				Value(&approved),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithProgramOptions(tea.WithOutput(promptOutput(c.out)))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.ConfirmPromptFailedFmt, err)
	}
	return approved, nil
}

// promptOutput renders the form where the plan went, falling back to stderr
// when out is not a terminal-capable file.
func promptOutput(out io.Writer) io.Writer {
	if f, ok := out.(*os.File); ok {
		return f
	}
	return os.Stderr
}

// confirmKeyMap treats Esc like Ctrl+C so either key declines the prompt.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	return km
}

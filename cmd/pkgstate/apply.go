package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgstate/internal/config"
	"github.com/conn-castle/pkgstate/internal/messages"
	"github.com/conn-castle/pkgstate/internal/oracle"
	"github.com/conn-castle/pkgstate/internal/prompt"
	"github.com/conn-castle/pkgstate/internal/reconcile"
	"github.com/conn-castle/pkgstate/internal/report"
	"github.com/conn-castle/pkgstate/internal/terminal"
)

var (
	newOracle = func(path string) (oracle.PackageOracle, error) {
		return oracle.NewPacman(oracle.PacmanConfig{Path: path})
	}
	newConfirm = func(out io.Writer) reconcile.ConfirmFunc {
		return prompt.NewConfirmer(out).Confirm
	}
	isTerminalWriter = terminal.IsTerminalWriter
)

func newApplyCmd(root *rootOptions) *cobra.Command {
	flags := &stateFlags{}
	var check, diff, asJSON, ask bool

	cmd := &cobra.Command{
		Use:   messages.ApplyUse + " [name...]",
		Short: messages.ApplyShort,
		Long:  messages.ApplyLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := config.Resolve(flags.resolve(cmd, args))
			if err != nil {
				return err
			}
			pkgs, err := newOracle(flags.pacmanPath(root.env))
			if err != nil {
				return err
			}

			var opts []reconcile.Option
			if ask && !check {
				opts = append(opts, reconcile.WithConfirm(newConfirm(cmd.ErrOrStderr())))
			}
			reconciler := reconcile.New(pkgs, opts...)

			var outcome reconcile.Outcome
			run := func() error {
				outcome = reconciler.Run(cmd.Context(), state, check)
				return nil
			}
			if check {
				_ = run()
			} else if err := oracle.WithLock(lockPath(root.env), run); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := report.Emit(out, outcome, report.Options{
				JSON:  asJSON,
				Diff:  diff,
				Color: !root.env.NoColor && isTerminalWriter(out),
			}); err != nil {
				return err
			}
			if code := report.ExitCode(outcome); code != report.ExitOK {
				return &SilentExitError{Code: code}
			}
			return nil
		},
	}

	flags.bindNames(cmd)
	flags.bindState(cmd)
	cmd.Flags().BoolVar(&check, "check", false, messages.FlagCheck)
	cmd.Flags().BoolVar(&diff, "diff", false, messages.FlagDiff)
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.FlagJSON)
	cmd.Flags().BoolVar(&ask, "ask", false, messages.FlagAsk)
	return cmd
}

func lockPath(env config.Env) string {
	if env.LockFile != "" {
		return env.LockFile
	}
	return oracle.DefaultLockPath()
}

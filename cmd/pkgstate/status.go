package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgstate/internal/config"
	"github.com/conn-castle/pkgstate/internal/desired"
	"github.com/conn-castle/pkgstate/internal/messages"
	"github.com/conn-castle/pkgstate/internal/reconcile"
)

func newStatusCmd(root *rootOptions) *cobra.Command {
	flags := &stateFlags{}
	cmd := &cobra.Command{
		Use:   messages.StatusUse + " [name...]",
		Short: messages.StatusShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := config.Resolve(flags.resolve(cmd, args))
			if err != nil {
				return err
			}
			// update_cache alone is a valid apply request but gives status nothing to show.
			if len(state.Packages) == 0 {
				return fmt.Errorf("%w: %s", desired.ErrInvalid, messages.ConfigNothingRequested)
			}
			pkgs, err := newOracle(flags.pacmanPath(root.env))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			statuses := reconcile.NewStateDiffer(pkgs).Classify(cmd.Context(), state.Packages, state.Target)
			for _, status := range statuses {
				format := messages.StatusAbsentFmt
				if status.Installed {
					format = messages.StatusInstalledFmt
				}
				if _, err := fmt.Fprintf(out, format, status.Spec.Name); err != nil {
					return err
				}
				if status.Spec.FromFile() {
					if _, err := fmt.Fprintf(out, messages.StatusSourceFmt, status.Spec.SourceFile); err != nil {
						return err
					}
					if v, ok := status.Spec.SemVer(); ok {
						if _, err := fmt.Fprintf(out, messages.StatusVersionFmt, v); err != nil {
							return err
						}
					}
				}
			}
			return nil
		},
	}
	flags.bindNames(cmd)
	return cmd
}

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgstate/internal/config"
	"github.com/conn-castle/pkgstate/internal/logging"
	"github.com/conn-castle/pkgstate/internal/messages"
)

var loadEnv = config.LoadEnv

// rootOptions holds settings shared by every subcommand.
type rootOptions struct {
	verbose bool
	env     config.Env
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv()
			if err != nil {
				return err
			}
			opts.env = env
			logging.Configure(logging.Options{
				Level:   env.LogLevel,
				Verbose: opts.verbose,
				NoColor: env.NoColor,
				Out:     cmd.ErrOrStderr(),
			})
			if _, ok := logging.ParseLevel(env.LogLevel); !ok && env.LogLevel != "" {
				log.Warn().Msgf(messages.ConfigInvalidLogLevelFmt, env.LogLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, messages.RootVerboseFlag)

	cmd.AddCommand(
		newApplyCmd(opts),
		newStatusCmd(opts),
	)
	return cmd
}

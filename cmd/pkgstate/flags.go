package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/pkgstate/internal/config"
	"github.com/conn-castle/pkgstate/internal/messages"
)

// stateFlags are the desired-state inputs shared by apply and status.
type stateFlags struct {
	names       []string
	state       string
	recurse     bool
	updateCache bool
	file        string
	pacman      string
}

func (f *stateFlags) bindNames(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.names, "name", "n", nil, messages.FlagName)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", messages.FlagFile)
	cmd.Flags().StringVar(&f.pacman, "pacman", "", messages.FlagPacman)
}

func (f *stateFlags) bindState(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.state, "state", "s", "present", messages.FlagState)
	cmd.Flags().BoolVar(&f.recurse, "recurse", false, messages.FlagRecurse)
	cmd.Flags().BoolVar(&f.updateCache, "update-cache", false, messages.FlagUpdateCache)
}

// resolve merges flags, positional names and the desired-state file.
func (f *stateFlags) resolve(cmd *cobra.Command, args []string) config.Flags {
	names := append([]string{}, f.names...)
	names = append(names, args...)
	return config.Flags{
		Names:          names,
		State:          f.state,
		StateSet:       changed(cmd, "state"),
		Recurse:        f.recurse,
		RecurseSet:     changed(cmd, "recurse"),
		UpdateCache:    f.updateCache,
		UpdateCacheSet: changed(cmd, "update-cache"),
		File:           f.file,
	}
}

// pacmanPath prefers --pacman over PKGSTATE_PACMAN.
func (f *stateFlags) pacmanPath(env config.Env) string {
	if f.pacman != "" {
		return f.pacman
	}
	return env.Pacman
}

func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

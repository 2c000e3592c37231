package config

import (
	"strings"

	"github.com/conn-castle/pkgstate/internal/desired"
)

// Flags is the command-line input. The *Set fields record whether a flag was
// given explicitly so it can override the desired-state file.
type Flags struct {
	Names          []string
	State          string
	StateSet       bool
	Recurse        bool
	RecurseSet     bool
	UpdateCache    bool
	UpdateCacheSet bool
	File           string
}

// Resolve merges the optional desired-state file with flags and validates the result.
// File packages come first, followed by packages named on the command line.
func Resolve(flags Flags) (desired.DesiredState, error) {
	var file File
	if strings.TrimSpace(flags.File) != "" {
		loaded, err := LoadFile(flags.File)
		if err != nil {
			return desired.DesiredState{}, err
		}
		file = *loaded
	}

	rawState := file.State
	if flags.StateSet {
		rawState = flags.State
	}
	target, err := desired.ParseTargetState(rawState)
	if err != nil {
		return desired.DesiredState{}, err
	}

	packages, err := desired.ParseList(file.Packages)
	if err != nil {
		return desired.DesiredState{}, err
	}
	fromFlags, err := desired.ParseNames(flags.Names)
	if err != nil {
		return desired.DesiredState{}, err
	}
	packages = append(packages, fromFlags...)

	state := desired.DesiredState{
		Packages:     packages,
		Target:       target,
		Recurse:      pick(file.Recurse, flags.Recurse, flags.RecurseSet),
		RefreshCache: pick(file.UpdateCache, flags.UpdateCache, flags.UpdateCacheSet),
	}
	if err := state.Validate(); err != nil {
		return desired.DesiredState{}, err
	}
	return state, nil
}

// pick prefers an explicit flag, then the file value, then false.
func pick(fileValue *bool, flagValue bool, flagSet bool) bool {
	if flagSet {
		return flagValue
	}
	if fileValue != nil {
		return *fileValue
	}
	return false
}

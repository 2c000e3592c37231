package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/pkgstate/internal/desired"
	"github.com/conn-castle/pkgstate/internal/messages"
)

// File is the TOML desired-state file.
type File struct {
	State       string   `toml:"state"`
	Recurse     *bool    `toml:"recurse"`
	UpdateCache *bool    `toml:"update_cache"`
	Packages    []string `toml:"packages"`
}

// LoadFile reads and parses a desired-state file. A leading ~ is expanded.
func LoadFile(path string) (*File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigExpandPathFmt, desired.ErrInvalid, path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigMissingFileFmt, desired.ErrInvalid, expanded, err)
	}
	return ParseFile(data, expanded)
}

// ParseFile parses desired-state TOML. source is used in error messages.
// Unknown keys are rejected so typos do not silently change the desired state.
func ParseFile(data []byte, source string) (*File, error) {
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigInvalidFileFmt, desired.ErrInvalid, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeys, desired.ErrInvalid, source, err)
	}
	if _, err := desired.ParseTargetState(file.State); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &file, nil
}

// decodeStrict re-decodes the TOML data with unknown-field rejection.
func decodeStrict(data []byte) error {
	var file File
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&file)
}

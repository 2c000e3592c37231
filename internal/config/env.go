package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/conn-castle/pkgstate/internal/messages"
)

// Env holds settings read from the environment.
type Env struct {
	Pacman   string `env:"PKGSTATE_PACMAN"`
	LockFile string `env:"PKGSTATE_LOCK_FILE"`
	LogLevel string `env:"PKGSTATE_LOG_LEVEL" envDefault:"warn"`
	NoColor  bool   `env:"PKGSTATE_NO_COLOR"`
}

// LoadEnv parses PKGSTATE_* variables.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf(messages.ConfigInvalidEnvFmt, err)
	}
	return cfg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultEnvironment is used when NODE_ENV is not set.
const DefaultEnvironment = "development"

// Environment holds the process environment the configuration depends on.
type Environment struct {
	// Name selects the section of the configuration file and names the
	// default socket file.
	// Env: NODE_ENV
	Name string `env:"NODE_ENV" envDefault:"development"`

	// ConfigPath overrides the configuration file location passed to
	// [Manager.Load].
	// Env: GHOST_CONFIG
	ConfigPath string `env:"GHOST_CONFIG"`
}

// ParseEnvironment reads [Environment] from environment variables using the
// caarlos0/env library.
func ParseEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("error getting env configs: %w", err)
	}

	return e, nil
}

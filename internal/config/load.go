// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const helpCheckDeployment = "Please check your deployment for config.yaml or config.example.yaml."

// Load reads, validates and commits the configuration file.
//
// The file is taken from GHOST_CONFIG when set, else from configFilePath,
// else from the current Paths.Config. A missing file is first created from
// the template (see [Manager.WriteFile]). The environment section is then
// checked by [Manager.Validate] and merged by [Manager.Init].
//
// The first error of the chain is returned; nothing is merged in that case.
func (m *Manager) Load(configFilePath string) (Config, error) {
	m.mu.Lock()
	switch {
	case m.env.ConfigPath != "":
		m.cfg.Paths.Config = m.env.ConfigPath
	case configFilePath != "":
		m.cfg.Paths.Config = configFilePath
	}
	configPath := m.cfg.Paths.Config
	m.mu.Unlock()

	if _, err := os.Stat(configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w %s: %w", ErrConfigRead, configPath, err)
		}

		if err := m.WriteFile(); err != nil {
			return Config{}, err
		}
	}

	raw, err := m.Validate()
	if err != nil {
		return Config{}, err
	}

	return m.Init(raw), nil
}

// WriteFile creates the configuration file by copying the template
// (Paths.ConfigExample) to Paths.Config.
//
// A missing template yields [ErrConfigNotFound]; read and write failures
// are reported and yield [ErrTemplateRead] or [ErrConfigWrite]. All three
// come as *[Error] with the application root as context.
func (m *Manager) WriteFile() error {
	paths := m.Get().Paths

	if _, err := os.Stat(paths.ConfigExample); err != nil {
		return newError(ErrConfigNotFound, paths.AppRoot, helpCheckDeployment)
	}

	src, err := os.Open(paths.ConfigExample)
	if err != nil {
		m.reporter.LogError(ErrTemplateRead, paths.AppRoot, helpCheckDeployment)
		return newError(fmt.Errorf("%w: %w", ErrTemplateRead, err), paths.AppRoot, helpCheckDeployment)
	}
	defer src.Close()

	dst, err := os.OpenFile(paths.Config, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		m.reporter.LogError(ErrConfigWrite, paths.AppRoot, helpCheckDeployment)
		return newError(fmt.Errorf("%w: %w", ErrConfigWrite, err), paths.AppRoot, helpCheckDeployment)
	}

	if _, err = io.Copy(dst, src); err == nil {
		err = dst.Close()
	} else {
		dst.Close()
	}
	if err != nil {
		m.reporter.LogError(ErrConfigWrite, paths.AppRoot, helpCheckDeployment)
		return newError(fmt.Errorf("%w: %w", ErrConfigWrite, err), paths.AppRoot, helpCheckDeployment)
	}

	return nil
}

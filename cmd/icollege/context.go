package main

import (
	"io"
	"strings"

	"github.com/guanggu/icollege/internal/config"
	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/models"
)

// devVersion is reported when the binary was built without a version.
const devVersion = "0.0.0-dev"

type commandContext struct {
	configFlag  string
	envFlag     string
	appRootFlag string
	logLevel    string

	buildInfo models.AppBuildInfo
}

func (c *commandContext) version() string {
	if v := c.buildInfo.BuildVersion(); v != "" && v != "N/A" {
		return v
	}
	return devVersion
}

func (c *commandContext) newLogger(w io.Writer) (*logger.Logger, error) {
	return logger.New(w, "icollege").WithLevel(strings.TrimSpace(c.logLevel))
}

// newManager creates the configuration manager from the flags and the
// process environment.
func (c *commandContext) newManager(log *logger.Logger) (*config.Manager, error) {
	env, err := config.ParseEnvironment()
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(c.envFlag); name != "" {
		env.Name = name
	}

	opts := []config.Option{
		config.WithEnvironment(env),
		config.WithReporter(log),
		config.WithVersion(c.version()),
	}
	if root := strings.TrimSpace(c.appRootFlag); root != "" {
		opts = append(opts, config.WithAppRoot(root))
	}

	return config.New(opts...)
}

// configPath is the configuration file requested by GHOST_CONFIG or the
// --config flag, in that order.
func (c *commandContext) configPath(m *config.Manager) string {
	if path := m.Environment().ConfigPath; path != "" {
		return path
	}
	return strings.TrimSpace(c.configFlag)
}

// loadConfig creates the manager and loads the configuration file.
func (c *commandContext) loadConfig(log *logger.Logger) (*config.Manager, config.Config, error) {
	m, err := c.newManager(log)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, err := m.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return nil, config.Config{}, err
	}

	return m, cfg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"dario.cat/mergo"
)

const (
	configFileName        = "config.yaml"
	configExampleFileName = "config.example.yaml"

	// tinfoilFlag disables every privacy-sensitive feature at once.
	tinfoilFlag = "useTinfoil"
)

var (
	uploadExtensions   = []string{".jpg", ".jpeg", ".gif", ".png", ".svg", ".svgz"}
	uploadContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/svg+xml"}
	deprecatedItems    = []string{"mail.fromaddress"}
)

// Manager owns the configuration of the running process. It is created once
// with [New], handed to every consumer, and released with [Manager.Close].
//
// Manager is safe for concurrent use.
type Manager struct {
	mu  sync.RWMutex
	cfg Config

	appRoot  string
	version  string
	env      Environment
	reporter Reporter

	// connMu serialises ConnectDatabase and Close so that at most one
	// connection attempt is in flight.
	connMu sync.Mutex
	driver Driver

	initial []Config

	// fileKeys are the keys written in the last validated file section.
	fileKeys []string
}

// Option configures a [Manager] created by [New].
type Option func(*Manager)

// WithAppRoot sets the application root all derived paths are built from.
// Defaults to the working directory.
func WithAppRoot(appRoot string) Option {
	return func(m *Manager) {
		m.appRoot = appRoot
	}
}

// WithEnvironment replaces the environment read from NODE_ENV and
// GHOST_CONFIG.
func WithEnvironment(env Environment) Option {
	return func(m *Manager) {
		m.env = env
	}
}

// WithReporter sets where validation errors and deprecation warnings go.
func WithReporter(r Reporter) Option {
	return func(m *Manager) {
		m.reporter = r
	}
}

// WithVersion sets the application version exposed as icollegeVersion.
func WithVersion(version string) Option {
	return func(m *Manager) {
		m.version = version
	}
}

// WithInitialConfig merges cfg into the manager right after construction.
func WithInitialConfig(cfg Config) Option {
	return func(m *Manager) {
		m.initial = append(m.initial, cfg)
	}
}

// New creates a Manager. Options are applied in order; the environment is
// read from NODE_ENV and GHOST_CONFIG unless [WithEnvironment] is given.
// The returned Manager already has its derived paths and defaults set.
func New(opts ...Option) (*Manager, error) {
	env, err := ParseEnvironment()
	if err != nil {
		return nil, err
	}

	appRoot, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error resolving application root: %w", err)
	}

	m := &Manager{
		appRoot:  appRoot,
		env:      env,
		reporter: nopReporter{},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.env.Name == "" {
		m.env.Name = DefaultEnvironment
	}

	m.derive()
	for _, cfg := range m.initial {
		m.set(cfg)
	}
	m.initial = nil

	return m, nil
}

// Environment returns the environment the manager was created with.
func (m *Manager) Environment() Environment {
	return m.env
}

// Set merges partial into the current configuration and recomputes the
// derived fields.
//
// Merge contract:
//   - non-zero values in partial replace existing values; zero values are
//     treated as absent and never erase anything;
//   - map entries (privacy flags, database and mail options) merge key by
//     key;
//   - Paths.Config and Paths.ContentPath are kept when supplied and only
//     defaulted when empty;
//   - every other path, Uploads, DeprecatedItems and Version are recomputed
//     on each call and cannot be overridden.
//
// Set performs no I/O; see [Manager.ConnectDatabase].
func (m *Manager) Set(partial Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set(partial)
}

func (m *Manager) set(partial Config) {
	// partial is cloned so its maps are never shared with the caller
	if err := mergo.Merge(&m.cfg, partial.clone(), mergo.WithOverride); err != nil {
		// both sides are Config, mergo only fails on mismatched types
		m.reporter.LogError(fmt.Errorf("error merging configs: %w", err), m.appRoot, "")
	}

	m.derive()
}

// derive recomputes the fields that are not merge-protected. Callers hold mu.
func (m *Manager) derive() {
	c := &m.cfg

	contentPath := c.Paths.ContentPath
	if contentPath == "" {
		contentPath = filepath.Join(m.appRoot, "content")
	}

	configPath := c.Paths.Config
	if configPath == "" {
		configPath = filepath.Join(m.appRoot, configFileName)
	}

	corePath := filepath.Join(m.appRoot, "core")

	c.Paths = Paths{
		AppRoot:       m.appRoot,
		Subdir:        subdirOf(c.URL),
		Config:        configPath,
		ConfigExample: filepath.Join(m.appRoot, configExampleFileName),
		CorePath:      corePath,
		ContentPath:   contentPath,
		ImagesPath:    filepath.Join(contentPath, "images"),
		ImagesRelPath: "content/images",
		ExportPath:    filepath.Join(corePath, "server", "data", "export") + string(filepath.Separator),
		Lang:          filepath.Join(corePath, "shared", "lang") + string(filepath.Separator),
	}

	c.Uploads = Uploads{
		Extensions:   slices.Clone(uploadExtensions),
		ContentTypes: slices.Clone(uploadContentTypes),
	}
	c.DeprecatedItems = slices.Clone(deprecatedItems)
	c.Version = m.version
}

// subdirOf returns the path of siteURL without one trailing slash, or ""
// when what remains is the root.
func subdirOf(siteURL string) string {
	if siteURL == "" {
		return ""
	}

	u, err := url.Parse(siteURL)
	if err != nil {
		return ""
	}

	localPath := u.Path
	if localPath != "/" {
		localPath = strings.TrimSuffix(localPath, "/")
	}
	if localPath == "" || localPath == "/" {
		return ""
	}

	return localPath
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.cfg.clone()
}

// Init commits a validated configuration and returns the result.
func (m *Manager) Init(raw Config) Config {
	m.Set(raw)
	return m.Get()
}

// Socket returns the unix socket the server should listen on. A configured
// path is returned as-is; `socket: true` resolves to
// <contentPath>/<environment>.socket. The second result is false when no
// socket is configured.
//
// `socket: false` decodes to the zero Socket and is therefore reported as
// no socket; Validate rejects such a server block unless host and port are
// given.
func (m *Manager) Socket() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	socket := m.cfg.Server.Socket
	if !socket.IsSet() {
		return "", false
	}

	if socket.Path != "" {
		return socket.Path, true
	}

	return filepath.Join(m.cfg.Paths.ContentPath, m.env.Name+".socket"), true
}

// IsPrivacyDisabled reports whether the privacy feature flag is switched
// off. Flags default to enabled: only an explicit false disables one, and
// useTinfoil disables all of them.
func (m *Manager) IsPrivacyDisabled(flag string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	privacy := m.cfg.Privacy
	if privacy == nil {
		return false
	}

	if privacy[tinfoilFlag] {
		return true
	}

	enabled, ok := privacy[flag]
	return ok && !enabled
}

// ConnectDatabase connects driver using the database.mongodb block.
//
// It is a no-op when no connection block is configured or when driver is
// already connected. Concurrent calls are serialised, so at most one
// connection is established; a failed attempt can be retried.
func (m *Manager) ConnectDatabase(ctx context.Context, driver Driver) error {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	if driver.Connected() {
		m.driver = driver
		return nil
	}

	mongodb := m.Get().Database.Mongodb
	if !mongodb.Connection.IsSet() {
		return nil
	}

	conn := mongodb.Connection
	if err := driver.Connect(ctx, conn.Host, conn.Database, conn.Port, mongodb.Options); err != nil {
		return fmt.Errorf("error connecting database %s:%d/%s: %w", conn.Host, conn.Port, conn.Database, err)
	}

	m.driver = driver
	return nil
}

// Close disconnects the driver connected through [Manager.ConnectDatabase].
func (m *Manager) Close(ctx context.Context) error {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	if m.driver == nil {
		return nil
	}

	err := m.driver.Disconnect(ctx)
	m.driver = nil
	if err != nil {
		return fmt.Errorf("error disconnecting database: %w", err)
	}

	return nil
}

type nopReporter struct{}

func (nopReporter) LogError(error, string, string) {}

func (nopReporter) LogWarn(string, string, string) {}

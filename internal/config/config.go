// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"slices"
	"time"
)

// Config is the application configuration for one environment. It mirrors
// an environment section of the YAML configuration file; the `koanf` tags are
// the file keys and the dot-paths used by deprecation checks.
//
// Zero values mean "not set": [Manager.Set] only lets non-zero values replace
// what is already there.
type Config struct {
	// URL is the public address of the blog, e.g. "https://example.com/blog".
	// Its path becomes [Paths.Subdir].
	URL string `koanf:"url"`

	// Server holds the binding of the HTTP server: either Host and Port or a
	// unix Socket.
	Server Server `koanf:"server"`

	// Database holds the document-database connection settings.
	Database Database `koanf:"database"`

	// Mail holds outgoing mail settings.
	Mail Mail `koanf:"mail"`

	// Privacy maps privacy feature flags (useGravatar, useGoogleFonts, ...)
	// to their state. A missing flag means the feature is enabled. The
	// special flag "useTinfoil" disables all of them.
	Privacy map[string]bool `koanf:"privacy"`

	// Auth holds the access-token settings of the admin API.
	Auth Auth `koanf:"auth"`

	// Paths is derived on every [Manager.Set]; only Config and ContentPath
	// may be supplied by the caller.
	Paths Paths `koanf:"paths"`

	// Uploads is static and recomputed on every [Manager.Set].
	Uploads Uploads `koanf:"uploads"`

	// DeprecatedItems lists dot-separated keys that are still honoured but
	// scheduled for removal. Recomputed on every [Manager.Set].
	DeprecatedItems []string `koanf:"deprecatedItems"`

	// Version is the version of the running application.
	Version string `koanf:"icollegeVersion"`
}

// Server holds the HTTP server binding.
type Server struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	Socket Socket `koanf:"socket"`
}

// Socket is the `server.socket` setting. In the file it is either a path
// string, or `true` to place the socket under the content directory.
type Socket struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// IsSet reports whether a socket binding was requested.
func (s Socket) IsSet() bool {
	return s.Enabled || s.Path != ""
}

// Database groups the database backends. Only MongoDB is supported.
type Database struct {
	Mongodb Mongodb `koanf:"mongodb"`
}

// Mongodb holds the MongoDB connection block.
type Mongodb struct {
	Connection Connection `koanf:"connection"`

	// Options are passed to the driver: username and password become the
	// credentials, everything else a connection-string option (maxPoolSize,
	// authSource, replicaSet, ...).
	Options map[string]any `koanf:"options"`
}

// IsSet reports whether any MongoDB setting is present.
func (m Mongodb) IsSet() bool {
	return m.Connection.IsSet() || len(m.Options) > 0
}

// Connection holds the MongoDB endpoint.
type Connection struct {
	Host     string `koanf:"host"`
	Database string `koanf:"database"`
	Port     int    `koanf:"port"`
}

// IsSet reports whether the connection block is present.
func (c Connection) IsSet() bool {
	return c.Host != "" || c.Database != "" || c.Port != 0
}

// Mail holds outgoing mail settings.
type Mail struct {
	From      string         `koanf:"from"`
	Transport string         `koanf:"transport"`
	Options   map[string]any `koanf:"options"`

	// FromAddress is deprecated in favour of From.
	FromAddress string `koanf:"fromaddress"`
}

// Auth holds the settings used to issue admin API access tokens.
type Auth struct {
	TokenSignKey  string        `koanf:"tokenSignKey"`
	TokenIssuer   string        `koanf:"tokenIssuer"`
	TokenDuration time.Duration `koanf:"tokenDuration"`
	ClientID      string        `koanf:"clientId"`
}

// Paths are filesystem locations derived from the application root and the
// site url.
type Paths struct {
	AppRoot       string `koanf:"appRoot"`
	Subdir        string `koanf:"subdir"`
	Config        string `koanf:"config"`
	ConfigExample string `koanf:"configExample"`
	CorePath      string `koanf:"corePath"`
	ContentPath   string `koanf:"contentPath"`
	ImagesPath    string `koanf:"imagesPath"`
	ImagesRelPath string `koanf:"imagesRelPath"`
	ExportPath    string `koanf:"exportPath"`
	Lang          string `koanf:"lang"`
}

// Uploads constrains what the upload API accepts.
type Uploads struct {
	Extensions   []string `koanf:"extensions"`
	ContentTypes []string `koanf:"contentTypes"`
}

// clone copies the maps and slices of c, nested option values included, so
// the copy can be handed out without sharing state.
func (c Config) clone() Config {
	c.Privacy = maps.Clone(c.Privacy)
	c.Mail.Options = cloneOptions(c.Mail.Options)
	c.Database.Mongodb.Options = cloneOptions(c.Database.Mongodb.Options)
	c.Uploads.Extensions = slices.Clone(c.Uploads.Extensions)
	c.Uploads.ContentTypes = slices.Clone(c.Uploads.ContentTypes)
	c.DeprecatedItems = slices.Clone(c.DeprecatedItems)
	return c
}

// cloneOptions deep-copies an options map. Nested maps and slices are
// copied; other values are shared.
func cloneOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}

	out := make(map[string]any, len(opts))
	for key, value := range opts {
		out[key] = cloneOptionValue(value)
	}
	return out
}

func cloneOptionValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneOptions(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = cloneOptionValue(elem)
		}
		return out
	default:
		return v
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
)

var (
	reservedSubdirPattern = regexp.MustCompile(`/icollege(/|$)`)
	hostnamePattern       = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
)

// Validate reads the section of the configuration file for the active
// environment and checks that it can be trusted:
//   - the section exists;
//   - url is an absolute http or https url;
//   - the url path has no "icollege" segment;
//   - database.mongodb.connection is present;
//   - server has host and port, or a socket.
//
// Each failed check is reported and returned as *[Error]. A file that cannot
// be read or parsed is returned as is. On success the raw section is returned
// without being merged.
func (m *Manager) Validate() (Config, error) {
	path := m.Get().Paths.Config
	envName := m.env.Name

	raw, keys, found, err := readSection(path, envName)
	if err != nil {
		return Config{}, err
	}

	if !found {
		return Config{}, m.reject(ErrEnvironmentNotFound,
			"Cannot find the configuration for the current NODE_ENV",
			"NODE_ENV="+envName,
			"Ensure your config.yaml has a section for the current NODE_ENV value and is formatted properly.")
	}

	if !isSiteURL(raw.URL) {
		return Config{}, m.reject(ErrInvalidURL,
			"Your site url in config.yaml is invalid.",
			raw.URL,
			"Please make sure this is a valid url before restarting")
	}

	if u, _ := url.Parse(raw.URL); reservedSubdirPattern.MatchString(u.Path) {
		return Config{}, m.reject(ErrReservedSubdir,
			"Your site url in config.yaml cannot contain a subdirectory called icollege.",
			raw.URL,
			"Please rename the subdirectory before restarting")
	}

	if !raw.Database.Mongodb.Connection.IsSet() {
		return Config{}, m.reject(ErrInvalidDatabase,
			"Your database configuration in config.yaml is invalid.",
			toJSON(raw.Database.Mongodb.Connection),
			"Please make sure this is a valid mongodb database configuration")
	}

	hasHostAndPort := raw.Server.Host != "" && raw.Server.Port != 0
	if !hasHostAndPort && !raw.Server.Socket.IsSet() {
		return Config{}, m.reject(ErrInvalidServer,
			"Your server values (socket, or host and port) in config.yaml are invalid.",
			toJSON(raw.Server),
			"Please provide them before restarting.")
	}

	m.mu.Lock()
	m.fileKeys = keys
	m.mu.Unlock()

	return raw, nil
}

// reject reports message and returns sentinel with its guidance attached.
func (m *Manager) reject(sentinel error, message, context, help string) error {
	m.reporter.LogError(errors.New(message), context, help)
	return newError(sentinel, context, help)
}

// isSiteURL reports whether raw is an absolute http or https url with a
// plausible host: an IP address, localhost, or a dotted name ending in a
// top-level domain.
func isSiteURL(raw string) bool {
	if raw == "" || strings.ContainsAny(raw, " \t\r\n") {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	switch {
	case host == "":
		return false
	case host == "localhost", net.ParseIP(host) != nil:
		return true
	default:
		return hostnamePattern.MatchString(host)
	}
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Package server runs the HTTP server of icollege.
//
// The server listens on the unix socket or the host and port of the loaded
// configuration and shuts down gracefully on SIGINT, SIGTERM or SIGQUIT.
package server

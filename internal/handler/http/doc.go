// Package http implements the admin API of icollege on top of chi.
//
// Routes live under [APIPrefix]. The token endpoint issues bearer tokens
// for the password grant; the remaining routes require one. Request
// tracing and access logging are applied to every route before requests
// are delegated to the service layer.
package http

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoBinding  = errors.New("server has neither a socket nor a host and port to listen on")
	errNotASocket = errors.New("socket path is taken by a file that is not a socket")
)

package server

import (
	"net"
	"strconv"

	"github.com/guanggu/icollege/internal/config"
)

// Binding is the address the server listens on.
type Binding struct {
	// Network is "unix" or "tcp".
	Network string
	Address string
}

// BindingFrom returns the socket of the configuration when one is set and
// its host and port otherwise.
func BindingFrom(m *config.Manager) Binding {
	if socket, ok := m.Socket(); ok {
		return Binding{Network: "unix", Address: socket}
	}

	srv := m.Get().Server
	if srv.Host == "" && srv.Port == 0 {
		return Binding{}
	}

	return Binding{Network: "tcp", Address: net.JoinHostPort(srv.Host, strconv.Itoa(srv.Port))}
}

func (b Binding) String() string {
	return b.Network + "://" + b.Address
}

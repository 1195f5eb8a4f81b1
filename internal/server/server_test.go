package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guanggu/icollege/internal/config"
	"github.com/guanggu/icollege/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, cfg config.Config) *config.Manager {
	t.Helper()

	m, err := config.New(
		config.WithAppRoot(t.TempDir()),
		config.WithEnvironment(config.Environment{Name: "testing"}),
		config.WithInitialConfig(cfg),
	)
	require.NoError(t, err)
	return m
}

func TestBindingFrom(t *testing.T) {
	t.Run("host and port", func(t *testing.T) {
		m := newTestManager(t, config.Config{Server: config.Server{Host: "127.0.0.1", Port: 2368}})

		assert.Equal(t, Binding{Network: "tcp", Address: "127.0.0.1:2368"}, BindingFrom(m))
	})

	t.Run("socket path wins over host and port", func(t *testing.T) {
		m := newTestManager(t, config.Config{Server: config.Server{
			Host:   "127.0.0.1",
			Port:   2368,
			Socket: config.Socket{Path: "/run/icollege.sock"},
		}})

		assert.Equal(t, Binding{Network: "unix", Address: "/run/icollege.sock"}, BindingFrom(m))
	})

	t.Run("socket true lives in the content directory", func(t *testing.T) {
		m := newTestManager(t, config.Config{Server: config.Server{Socket: config.Socket{Enabled: true}}})

		want := filepath.Join(m.Get().Paths.ContentPath, "testing.socket")
		assert.Equal(t, Binding{Network: "unix", Address: want}, BindingFrom(m))
	})

	t.Run("nothing configured", func(t *testing.T) {
		m := newTestManager(t, config.Config{})

		assert.Equal(t, Binding{}, BindingFrom(m))
	})
}

func TestNewServer_NoBinding(t *testing.T) {
	_, err := NewServer(http.NotFoundHandler(), Binding{}, logger.Nop())

	require.ErrorIs(t, err, errNoBinding)
}

func hello(w http.ResponseWriter, _ *http.Request) {
	io.WriteString(w, "hello")
}

func waitForSocket(t *testing.T, path string) {
	t.Helper()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunServer_UnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "s.sock")

	// leftover of a previous run
	stale, err := net.Listen("unix", socket)
	require.NoError(t, err)
	stale.(*net.UnixListener).SetUnlinkOnClose(false)
	require.NoError(t, stale.Close())
	info, err := os.Lstat(socket)
	require.NoError(t, err)
	require.Equal(t, os.ModeSocket, info.Mode().Type())

	srv, err := NewServer(http.HandlerFunc(hello), Binding{Network: "unix", Address: socket}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	client := &http.Client{Transport: &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(ctx, "unix", socket)
		},
	}}

	require.Eventually(t, func() bool {
		resp, err := client.Get("http://icollege/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body) == "hello"
	}, 5*time.Second, 10*time.Millisecond)

	info, err = os.Stat(socket)
	require.NoError(t, err)
	assert.Equal(t, os.ModeSocket, info.Mode().Type())
	assert.Equal(t, socketMode, info.Mode().Perm())

	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not stop")
	}

	_, err = os.Stat(socket)
	assert.True(t, os.IsNotExist(err), "socket should be removed on shutdown")
}

func TestRunServer_SocketPathIsRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://example.com\n"), 0o600))

	srv, err := NewServer(http.HandlerFunc(hello), Binding{Network: "unix", Address: path}, logger.Nop())
	require.NoError(t, err)

	err = srv.RunServer(context.Background())
	require.ErrorIs(t, err, errNotASocket)

	require.NoError(t, srv.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "url: http://example.com\n", string(content))
}

func TestRemoveSocket(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		require.NoError(t, removeSocket(filepath.Join(dir, "missing.sock")))
	})

	t.Run("directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0o700))

		require.ErrorIs(t, removeSocket(sub), errNotASocket)
		assert.DirExists(t, sub)
	})

	t.Run("socket", func(t *testing.T) {
		socket := filepath.Join(dir, "s.sock")
		l, err := net.Listen("unix", socket)
		require.NoError(t, err)
		l.(*net.UnixListener).SetUnlinkOnClose(false)
		require.NoError(t, l.Close())

		require.NoError(t, removeSocket(socket))
		assert.NoFileExists(t, socket)
	})
}

func TestRunServer_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv, err := NewServer(http.HandlerFunc(hello), Binding{Network: "tcp", Address: l.Addr().String()}, logger.Nop())
	require.NoError(t, err)

	err = srv.RunServer(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tcp://"+l.Addr().String())
}

func TestRunServer_StoppedThroughShutdown(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "s.sock")
	srv, err := NewServer(http.HandlerFunc(hello), Binding{Network: "unix", Address: socket}, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.RunServer(context.Background()) }()

	waitForSocket(t, socket)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not stop")
	}
}

package store

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"

	"github.com/guanggu/icollege/internal/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is the MongoDB connection of the application. It satisfies the
// database driver contract of the configuration manager: Connect is called
// with the database.mongodb block, Disconnect on shutdown.
type Mongo struct {
	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database

	logger *logger.Logger
}

// NewMongo returns a disconnected Mongo.
func NewMongo(logger *logger.Logger) *Mongo {
	return &Mongo{logger: logger}
}

// Connect opens a client for the given endpoint and pings the primary.
// options may carry username and password; every other entry is passed as
// a connection-string option.
func (m *Mongo) Connect(ctx context.Context, host, database string, port int, opts map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return nil
	}

	uri := connectionURI(host, database, port, opts)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		m.logger.Err(err).Str("func", "*Mongo.Connect").Str("host", host).Int("port", port).Msg("error creating mongodb client")
		return fmt.Errorf("error creating mongodb client: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		m.logger.Err(err).Str("func", "*Mongo.Connect").Str("host", host).Int("port", port).Msg("error pinging mongodb")
		_ = client.Disconnect(ctx)
		return fmt.Errorf("error pinging mongodb: %w", err)
	}

	m.client = client
	m.db = client.Database(database)
	m.logger.Info().Str("host", host).Int("port", port).Str("database", database).Msg("connected to mongodb")

	return nil
}

// Connected reports whether Connect has succeeded and Disconnect has not
// been called since.
func (m *Mongo) Connected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.client != nil
}

// Disconnect closes the client. It is a no-op when not connected.
func (m *Mongo) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client, m.db = nil, nil
	if err != nil {
		return fmt.Errorf("error disconnecting mongodb: %w", err)
	}

	return nil
}

// Database returns the handle of the connected database.
func (m *Mongo) Database() (*mongo.Database, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return nil, ErrNotConnected
	}

	return m.db, nil
}

// connectionURI builds a mongodb:// connection string. Credentials are taken
// from the username and password options.
func connectionURI(host, database string, port int, opts map[string]any) string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   host,
		Path:   "/" + database,
	}
	if port != 0 {
		u.Host = net.JoinHostPort(host, strconv.Itoa(port))
	}

	query := url.Values{}
	var username, password string
	for key, value := range opts {
		switch key {
		case "username":
			username = fmt.Sprint(value)
		case "password":
			password = fmt.Sprint(value)
		default:
			query.Set(key, fmt.Sprint(value))
		}
	}

	if username != "" {
		u.User = url.UserPassword(username, password)
	}
	u.RawQuery = query.Encode()

	return u.String()
}

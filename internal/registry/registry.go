// Package registry manages one PostgreSQL connection pool per registered
// connection string, keyed by an opaque, unguessable id. Callers register a
// connection string once, then use the returned id for every subsequent
// operation; the raw credential never travels with requests.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/puddle/v2"
)

// Config holds pool sizing and timeout settings shared by all registered
// connections.
type Config struct {
	MinConns       int32
	MaxConns       int32
	AcquireTimeout time.Duration
	ConnectTimeout time.Duration
}

// applyDefaults fills zero fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.MinConns <= 0 {
		c.MinConns = 1
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 5
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = 30 * time.Second
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
}

// handle is one registered connection: an id bound to a pool for the
// lifetime of the registration.
type handle struct {
	id        string
	pool      *pgxpool.Pool
	createdAt time.Time
}

// Registry owns the connection pools. All methods are safe for concurrent
// use; pools for distinct ids are fully independent resources.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*handle
	closed bool

	cfg    Config
	logger *slog.Logger
}

// New creates an empty registry.
// If logger is nil, a discard logger is used.
func New(cfg Config, logger *slog.Logger) *Registry {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		conns:  make(map[string]*handle),
		cfg:    cfg,
		logger: logger,
	}
}

// Register validates the connection string by establishing at least one live
// connection, creates a bounded pool for it, and returns a freshly generated
// id. Ids are random UUIDs and are never reused, so a disconnected id stays
// invalid for the life of the process.
func (r *Registry) Register(ctx context.Context, connString string) (string, error) {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return "", ErrRegistryClosed
	}

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return "", &ConnectionError{Reason: scrubCredential(err.Error(), connString), Err: err}
	}
	poolCfg.MinConns = r.cfg.MinConns
	poolCfg.MaxConns = r.cfg.MaxConns
	poolCfg.ConnConfig.ConnectTimeout = r.cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return "", &ConnectionError{Reason: scrubCredential(err.Error(), connString), Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return "", &ConnectionError{Reason: scrubCredential(err.Error(), connString), Err: err}
	}

	h := &handle{
		id:        uuid.NewString(),
		pool:      pool,
		createdAt: time.Now(),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		pool.Close()
		return "", ErrRegistryClosed
	}
	r.conns[h.id] = h
	r.mu.Unlock()

	r.logger.Info("registered connection",
		slog.String("id", h.id),
		slog.String("dsn", RedactDSN(connString)))
	return h.id, nil
}

// Acquire borrows one physical connection from the pool for id. It suspends
// the caller until a connection is free or the acquisition timeout elapses.
// The returned connection must be Released on every exit path.
//
// Acquiring a second connection for the same id while holding one is not
// supported: with a bounded pool it can deadlock the caller against itself.
func (r *Registry) Acquire(ctx context.Context, id string) (*pgxpool.Conn, error) {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrRegistryClosed
	}
	h, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownConnectionError{ID: id}
	}

	acquireCtx, cancel := context.WithTimeout(ctx, r.cfg.AcquireTimeout)
	defer cancel()

	conn, err := h.pool.Acquire(acquireCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &PoolTimeoutError{ID: id, Timeout: r.cfg.AcquireTimeout}
		}
		if errors.Is(err, puddle.ErrClosedPool) {
			// Disconnect raced us between the map lookup and the acquire.
			return nil, &UnknownConnectionError{ID: id}
		}
		return nil, fmt.Errorf("failed to acquire connection for id %q: %w", id, err)
	}
	return conn, nil
}

// Disconnect removes the id and closes its pool. New acquisitions fail
// immediately with UnknownConnectionError; in-flight queries are allowed to
// complete before the underlying connections close.
func (r *Registry) Disconnect(id string) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	h, ok := r.conns[id]
	if !ok {
		r.mu.Unlock()
		return &UnknownConnectionError{ID: id}
	}
	delete(r.conns, id)
	r.mu.Unlock()

	// Blocks until every acquired connection has been released.
	h.pool.Close()
	r.logger.Info("disconnected", slog.String("id", id))
	return nil
}

// Close closes every registered pool and marks the registry closed. It is
// idempotent; a second call is a no-op. All other operations fail with
// ErrRegistryClosed afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	handles := make([]*handle, 0, len(r.conns))
	for _, h := range r.conns {
		handles = append(handles, h)
	}
	r.conns = make(map[string]*handle)
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, h := range handles {
		wg.Add(1)
		go func(h *handle) {
			defer wg.Done()
			h.pool.Close()
		}(h)
	}
	wg.Wait()
	r.logger.Info("registry closed", slog.Int("pools", len(handles)))
}

// IDs returns the currently registered connection ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}

// ConnectionStatus is a point-in-time snapshot of one registered pool.
type ConnectionStatus struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	TotalConns    int32     `json:"total_conns"`
	IdleConns     int32     `json:"idle_conns"`
	AcquiredConns int32     `json:"acquired_conns"`
	MaxConns      int32     `json:"max_conns"`
}

// Status snapshots every registered pool. The connection strings themselves
// are never part of the snapshot.
func (r *Registry) Status() []ConnectionStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnectionStatus, 0, len(r.conns))
	for _, h := range r.conns {
		st := h.pool.Stat()
		out = append(out, ConnectionStatus{
			ID:            h.id,
			CreatedAt:     h.createdAt,
			TotalConns:    st.TotalConns(),
			IdleConns:     st.IdleConns(),
			AcquiredConns: st.AcquiredConns(),
			MaxConns:      st.MaxConns(),
		})
	}
	return out
}

// Stat returns pool statistics and the registration time for an id.
func (r *Registry) Stat(id string) (*pgxpool.Stat, time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, time.Time{}, ErrRegistryClosed
	}
	h, ok := r.conns[id]
	if !ok {
		return nil, time.Time{}, &UnknownConnectionError{ID: id}
	}
	return h.pool.Stat(), h.createdAt, nil
}

// scrubCredential removes the connection string's password from a driver
// message, in case the driver echoed it back.
func scrubCredential(msg, connString string) string {
	if pw := passwordOf(connString); pw != "" {
		msg = strings.ReplaceAll(msg, pw, "xxxxx")
	}
	return msg
}

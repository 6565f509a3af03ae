package registry

import (
	"errors"
	"fmt"
	"time"
)

// ErrRegistryClosed is returned by every registry operation after Close.
var ErrRegistryClosed = errors.New("connection registry is closed")

// ConnectionError is returned when a connection string cannot be validated
// by establishing a live connection. The message never contains credentials.
type ConnectionError struct {
	Reason string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect: %s", e.Reason)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// UnknownConnectionError is returned when a connection id is not registered
// or has already been disconnected.
type UnknownConnectionError struct {
	ID string
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("unknown connection id %q: not registered or already disconnected", e.ID)
}

// PoolTimeoutError is returned when no pooled connection became free within
// the configured acquisition timeout.
type PoolTimeoutError struct {
	ID      string
	Timeout time.Duration
}

func (e *PoolTimeoutError) Error() string {
	return fmt.Sprintf("no free connection for id %q within %s", e.ID, e.Timeout)
}

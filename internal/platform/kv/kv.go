// Package kv is the narrow durable storage contract used by the core:
// whole JSON collections read and written under a single key. There is no
// transactional guarantee across keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound indicates the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store reads and writes collection blobs by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

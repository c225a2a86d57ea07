// Package store holds each planning session's durable state: guests,
// tables, venue configuration, optimizer parameters and candidate layouts.
// Every field persists independently as one JSON blob under its own key, so
// a corrupt or missing entry degrades to that field's default without
// touching the others.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get when a key has no value.
var ErrKeyNotFound = errors.New("key not found")

// KV is the keyed byte store backing a session.  The production
// implementation is Redis; tests and Redis-less deployments use the
// in-memory one.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

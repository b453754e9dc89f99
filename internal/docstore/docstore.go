// Package docstore persists whole collections of JSON records.
//
// A collection is an ordered JSON array that is read and rewritten as a
// unit. Backends only move bytes; Collection adds typed access and
// serializes read-modify-write cycles within the process.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

//go:generate mockgen -source=$GOFILE -destination=docstore_mock_test.go -package=docstore_test

const (
	Users     = "users"
	Workouts  = "workouts"
	Exercises = "exercises"
	Settings  = "settings"
	Sequences = "sequences"
)

// Collections lists every collection the application persists.
var Collections = []string{Users, Workouts, Exercises, Settings, Sequences}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Store is the persistence contract shared by every backend.
// Read returns the JSON array last written for the collection, or "[]" if
// the collection was never written. Write durably replaces the collection.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, data []byte) error
	Close() error
}

var emptyArray = []byte("[]")

// normalize turns an empty or null document into an empty array.
func normalize(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyArray
	}
	return data
}

type lockKey struct {
	store Store
	name  string
}

// locks holds one mutex per (store, collection), shared by every
// Collection bound to the same pair.
var locks sync.Map

func lockFor(store Store, name string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(lockKey{store: store, name: name}, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Collection gives typed, serialized access to one collection of a Store.
type Collection[T any] struct {
	store Store
	name  string
	mu    *sync.Mutex
}

// NewCollection binds the named collection of store to record type T.
// Collections bound to the same store and name share one lock.
func NewCollection[T any](store Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name, mu: lockFor(store, name)}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// All returns every record in storage order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

// Update loads the collection, passes it to fn and writes back what fn
// returns. Concurrent updates of the same collection run one at a time.
// When fn returns an error nothing is written.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.save(ctx, updated)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Read(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	records := make([]T, 0)
	if err := json.Unmarshal(normalize(data), &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.store.Write(ctx, c.name, data); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}

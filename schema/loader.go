package schema

import (
	"context"
	"sync"
)

// Loader memoizes the schema produced by a Source. The first successful Load
// reads and validates the source; later calls return copies of the cached
// schema. A failed load is not cached, so the next call retries.
//
// Loader is safe for concurrent use; concurrent first calls perform a single
// load.
type Loader struct {
	src Source

	mu     sync.Mutex
	loaded bool
	cached Schema
}

// NewLoader returns a Loader over src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load returns an independent copy of the memoized schema, loading it first
// if needed.
func (l *Loader) Load(ctx context.Context) (Schema, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.cached.Clone(), nil
	}
	if l.src == nil {
		return Schema{}, ErrNoSource
	}

	fields, err := l.src.Load(ctx)
	if err != nil {
		return Schema{}, err
	}
	s, err := New(fields...)
	if err != nil {
		return Schema{}, err
	}

	l.cached = s
	l.loaded = true
	return s.Clone(), nil
}

// Reset drops the memoized schema; the next Load reads the source again.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loaded = false
	l.cached = Schema{}
}

var defaultLoader = NewLoader(EmbeddedSource())

// Default returns the process-wide schema built from the embedded resource.
func Default(ctx context.Context) (Schema, error) {
	return defaultLoader.Load(ctx)
}

// DefaultLoader returns the Loader behind Default.
func DefaultLoader() *Loader {
	return defaultLoader
}

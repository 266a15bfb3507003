package ratelimit

import (
	"context"
	"io"

	"github.com/sdejongh/mergeln/pkg/storage"
)

// Backend paces every file opened through the wrapped backend
type Backend struct {
	storage.Backend
	limiter *Limiter
}

// NewBackend wraps backend. With a nil limiter backend is returned unchanged.
func NewBackend(backend storage.Backend, limiter *Limiter) storage.Backend {
	if limiter == nil {
		return backend
	}
	return &Backend{Backend: backend, limiter: limiter}
}

// Open opens a file whose reads share the backend's limiter
func (b *Backend) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := b.Backend.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewReadCloser(ctx, rc, b.limiter), nil
}

package application

import (
	"context"
	"sync"
)

// Provider builds a dependency on first use and hands the same value to
// every later caller. Commands use it for clients whose construction is
// expensive or interactive, such as those behind a browser OAuth consent,
// so the cost is only paid on the code paths that need them.
type Provider[T any] struct {
	mu    sync.Mutex
	build func(ctx context.Context) (T, error)
	value T
	built bool
}

// NewProvider creates a Provider that calls build at most once successfully.
func NewProvider[T any](build func(ctx context.Context) (T, error)) *Provider[T] {
	return &Provider[T]{build: build}
}

// StaticProvider returns a Provider that always yields value.
func StaticProvider[T any](value T) *Provider[T] {
	return &Provider[T]{value: value, built: true}
}

// Get returns the built value, building it on the first call. A failed build
// is not cached; the next Get retries.
func (p *Provider[T]) Get(ctx context.Context) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.built {
		return p.value, nil
	}

	v, err := p.build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	p.value = v
	p.built = true
	return v, nil
}

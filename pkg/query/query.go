// Package query tracks the lifecycle of fetches and mutations: loading, last error, last result.
package query

import (
	"context"
	"reflect"
	"sync"

	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/logging"
	"go.uber.org/zap"
)

// Fetcher loads a value.
type Fetcher[T any] func(ctx context.Context) (T, error)

// State is a snapshot of a Query.
type State[T any] struct {
	Data    T
	Loading bool
	Error   string
}

// Query runs a fetcher on first use and whenever its dependencies change.
type Query[T any] struct {
	fetch   Fetcher[T]
	logger  *zap.Logger
	mu      sync.Mutex
	data    T
	loading bool
	errMsg  string
	started bool
	deps    []interface{}
}

// New creates a Query. It reports Loading until the first run completes.
func New[T any](fetch func(ctx context.Context) (T, error), logger *zap.Logger) (q *Query[T]) {
	q = &Query[T]{
		fetch:   fetch,
		logger:  logging.OrNop(logger),
		loading: true,
	}
	return q
}

// Run fetches when called for the first time or when deps differ from the previous run.
// Otherwise it returns without touching the backend.
func (q *Query[T]) Run(ctx context.Context, deps ...interface{}) (err error) {
	q.mu.Lock()
	if q.started && reflect.DeepEqual(q.deps, deps) {
		q.mu.Unlock()
		return err
	}
	q.started = true
	q.deps = deps
	q.mu.Unlock()

	err = q.Refetch(ctx)
	return err
}

// Refetch re-runs the fetcher unconditionally. Data is kept when the fetch fails.
func (q *Query[T]) Refetch(ctx context.Context) (err error) {
	q.mu.Lock()
	q.loading = true
	q.errMsg = ""
	q.mu.Unlock()

	var result T
	result, err = q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = false

	if err != nil {
		q.errMsg = client.Message(err)
		if q.errMsg == "" {
			q.errMsg = client.GenericErrorMessage
		}
		q.logger.Warn("fetch failed", zap.Error(err))
		return err
	}

	q.data = result
	return err
}

// State returns the current snapshot.
func (q *Query[T]) State() (state State[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	state = State[T]{
		Data:    q.data,
		Loading: q.loading,
		Error:   q.errMsg,
	}
	return state
}

// Mutation records the outcome of write calls. The caller handles user-facing errors.
type Mutation struct {
	logger  *zap.Logger
	mu      sync.Mutex
	loading bool
	errMsg  string
	data    interface{}
}

// NewMutation creates an idle Mutation.
func NewMutation(logger *zap.Logger) (m *Mutation) {
	m = &Mutation{logger: logging.OrNop(logger)}
	return m
}

// Loading reports whether a mutation is in flight.
func (m *Mutation) Loading() (loading bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loading = m.loading
	return loading
}

// Error returns the last failure message, cleared when a new mutation starts.
func (m *Mutation) Error() (msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg = m.errMsg
	return msg
}

// Data returns the last successful result.
func (m *Mutation) Data() (data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data = m.data
	return data
}

// Mutate runs fn, records loading/error state on m and returns fn's result.
// Failures are recorded and then returned unchanged.
func Mutate[T any](ctx context.Context, m *Mutation, fn func(ctx context.Context) (T, error)) (result T, err error) {
	m.mu.Lock()
	m.loading = true
	m.errMsg = ""
	m.mu.Unlock()

	result, err = fn(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.errMsg = client.Message(err)
		if m.errMsg == "" {
			m.errMsg = client.GenericErrorMessage
		}
		m.logger.Warn("mutation failed", zap.Error(err))
		return result, err
	}

	m.data = result
	return result, err
}

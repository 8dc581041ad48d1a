// Package store keeps the client's view of purchases and orders and applies
// status transitions as a two-phase update: a speculative local write, then
// confirmation or revert against the server.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tuanvumaihuynh/inventory-management/internal/client"
	"github.com/tuanvumaihuynh/inventory-management/internal/model"
)

var (
	ErrClosed        = errors.New("store closed")
	ErrUnknownEntity = errors.New("unknown entity")
)

type Outcome uint8

const (
	// OutcomeRejected: the transition was refused locally. Nothing changed
	// and no request was sent.
	OutcomeRejected Outcome = iota + 1
	// OutcomeReverted: the server call failed and the local list holds the
	// server's state again, or the pre-transition state if reloading failed.
	OutcomeReverted
	// OutcomeConfirmed: the server accepted the transition.
	OutcomeConfirmed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeReverted:
		return "reverted"
	case OutcomeConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// TransitionResult reports how a transition ended.
type TransitionResult struct {
	ID      int64
	Outcome Outcome
	// Err is the rejection or the failed call. Nil when confirmed.
	Err error
	// Reconciled is set when the list was reloaded from the server afterwards.
	Reconciled bool
}

func (r TransitionResult) OK() bool { return r.Outcome == OutcomeConfirmed }

type status[S any] interface {
	comparable
	fmt.Stringer
	Valid() bool
	CanTransitionTo(S) bool
}

type Option func(*options)

type options struct {
	logger          *slog.Logger
	reloadOnSuccess bool
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithReloadOnSuccess controls the reload after a confirmed transition.
// It defaults to true.
func WithReloadOnSuccess(reload bool) Option {
	return func(o *options) { o.reloadOnSuccess = reload }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default(), reloadOnSuccess: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// listStore is the shared mechanics of the purchase and order stores.
type listStore[T any, S status[S]] struct {
	kind string
	opts options

	fetch      func(context.Context) ([]T, error)
	put        func(context.Context, int64, S) error
	idOf       func(T) int64
	statusOf   func(T) S
	withStatus func(T, S) T

	mu     sync.Mutex
	items  []T
	errMsg string
	closed bool
}

// Load replaces the list with the server's. On failure the old list is kept
// and the error message recorded. After Close the result is discarded.
func (s *listStore[T, S]) Load(ctx context.Context) error {
	items, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if err != nil {
		s.opts.logger.ErrorContext(ctx, "load failed", slog.String("store", s.kind), slog.Any("error", err))
		s.errMsg = client.Message(err, "")
		return fmt.Errorf("load %s: %w", s.kind, err)
	}

	s.items = items
	return nil
}

// Transition moves entity id to target. See Outcome for the possible ends.
func (s *listStore[T, S]) Transition(ctx context.Context, id int64, target S) TransitionResult {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: ErrClosed}
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		s.errMsg = fmt.Sprintf("%s %d not found", s.kind, id)
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: fmt.Errorf("%w: %s %d", ErrUnknownEntity, s.kind, id)}
	}

	current := s.statusOf(s.items[idx])
	if !target.Valid() || !current.CanTransitionTo(target) {
		err := fmt.Errorf("%w: %s %d %s -> %s", model.ErrInvalidTransition, s.kind, id, current, target)
		s.errMsg = fmt.Sprintf("Cannot change %s from %s to %s.", s.kind, current, target)
		s.mu.Unlock()
		return TransitionResult{ID: id, Outcome: OutcomeRejected, Err: err}
	}

	s.errMsg = ""
	s.items[idx] = s.withStatus(s.items[idx], target)
	s.mu.Unlock()

	if err := s.put(ctx, id, target); err != nil {
		s.opts.logger.ErrorContext(ctx, "status update failed",
			slog.String("store", s.kind),
			slog.Int64("id", id),
			slog.String("target", target.String()),
			slog.Any("error", err))

		res := TransitionResult{ID: id, Outcome: OutcomeReverted, Err: err}
		if s.Load(ctx) == nil {
			res.Reconciled = true
		} else {
			s.revert(id, target, current)
		}
		s.setError(client.Message(err, ""))
		return res
	}

	res := TransitionResult{ID: id, Outcome: OutcomeConfirmed}
	if s.opts.reloadOnSuccess {
		res.Reconciled = s.Load(ctx) == nil
	}
	return res
}

// revert undoes the speculative write unless something else has replaced it.
func (s *listStore[T, S]) revert(id int64, speculative, previous S) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if idx := s.indexLocked(id); idx >= 0 && s.statusOf(s.items[idx]) == speculative {
		s.items[idx] = s.withStatus(s.items[idx], previous)
	}
}

func (s *listStore[T, S]) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.errMsg = msg
	}
}

// Snapshot returns a copy of the current list.
func (s *listStore[T, S]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]T(nil), s.items...)
}

func (s *listStore[T, S]) Find(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	var zero T
	return zero, false
}

// ErrorMessage is the last user-visible error, empty when there is none.
func (s *listStore[T, S]) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errMsg
}

func (s *listStore[T, S]) ClearError() {
	s.setError("")
}

// Close makes in-flight loads discard their results.
func (s *listStore[T, S]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
}

func (s *listStore[T, S]) indexLocked(id int64) int {
	for i, item := range s.items {
		if s.idOf(item) == id {
			return i
		}
	}
	return -1
}

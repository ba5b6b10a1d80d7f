package core

import (
	"context"
	"sync"
)

// RequestLifecycle tracks the single outstanding request of a view.
//
// Begin supersedes whatever was in flight: it cancels the previous context and bumps the
// generation. A result is only applied when IsCurrent still holds for the generation it was
// started with, so a superseded request can never overwrite newer state even if it resolves
// after its cancellation.
type RequestLifecycle struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Begin cancels the in-flight request and starts a new generation derived from parent.
func (l *RequestLifecycle) Begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	l.gen++
	return ctx, l.gen
}

// IsCurrent reports whether gen is the latest generation and has not been cancelled.
func (l *RequestLifecycle) IsCurrent(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.gen && l.cancel != nil
}

// Finish releases the context of gen once its result has been handled.
// A superseded generation is ignored.
func (l *RequestLifecycle) Finish(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen == l.gen && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Cancel aborts the in-flight request. Results that arrive afterwards are discarded.
func (l *RequestLifecycle) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

// Generation returns the latest generation handed out.
func (l *RequestLifecycle) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

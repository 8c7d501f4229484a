package events

import (
	"context"
	"sync"
)

// Subscription is the handle returned by Event.On
type Subscription struct {
	once   sync.Once
	revoke func()
}

func newSubscription(revoke func()) *Subscription {
	return &Subscription{revoke: revoke}
}

// Revoke removes the listener. Safe to call more than once.
func (s *Subscription) Revoke() {
	if s == nil {
		return
	}
	s.once.Do(s.revoke)
}

// Scope ties subscriptions and asynchronous work to the lifetime of one UI
// fragment. Closing the scope revokes everything it collected and cancels
// its context, so late results can be discarded.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewScope creates a scope whose context derives from parent
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context is cancelled when the scope closes
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Closed reports whether Close was called
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Add collects a subscription. Adding to a closed scope revokes it right away.
func (s *Scope) Add(sub *Subscription) *Subscription {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Revoke()
		return sub
	}
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub
}

// Close revokes every collected subscription and cancels the context
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Revoke()
	}
	s.cancel()
}

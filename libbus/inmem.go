package libbus

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// InMem is a single-process Messenger. Subjects follow NATS rules: tokens are
// dot separated, "*" matches one token and a trailing ">" matches the rest, so
// "testrail.tools.>" receives every tool call event.
type InMem struct {
	mu     sync.RWMutex
	closed bool
	subs   []*inmemSubscription
}

type inmemSubscription struct {
	pattern []string
	ch      chan<- []byte
	bus     *InMem
}

// NewInMem returns an empty in-memory bus.
func NewInMem() *InMem {
	return &InMem{}
}

// Publish hands data to every subscriber whose pattern matches subject. It
// blocks until each of them took the message or ctx ends.
func (p *InMem) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tokens := strings.Split(subject, ".")

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrConnectionClosed
	}
	var targets []chan<- []byte
	for _, s := range p.subs {
		if matchSubject(s.pattern, tokens) {
			targets = append(targets, s.ch)
		}
	}
	p.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- data:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Stream subscribes ch to subject, which may contain wildcards. The
// subscription ends on Unsubscribe or when ctx ends.
func (p *InMem) Stream(ctx context.Context, subject string, ch chan<- []byte) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub := &inmemSubscription{pattern: strings.Split(subject, "."), ch: ch, bus: p}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrConnectionClosed
	}
	p.subs = append(p.subs, sub)
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return sub, nil
}

// Close drops all subscriptions; later calls fail with ErrConnectionClosed.
func (p *InMem) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.subs = nil
	return nil
}

func (s *inmemSubscription) Unsubscribe() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	s.bus.subs = slices.DeleteFunc(s.bus.subs, func(other *inmemSubscription) bool {
		return other == s
	})
	return nil
}

func matchSubject(pattern, subject []string) bool {
	for i, token := range pattern {
		if token == ">" {
			return i == len(pattern)-1 && len(subject) > i
		}
		if i >= len(subject) {
			return false
		}
		if token != "*" && token != subject[i] {
			return false
		}
	}
	return len(pattern) == len(subject)
}

var _ Messenger = (*InMem)(nil)

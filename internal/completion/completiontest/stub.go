// Package completiontest provides a scripted completion.Client for tests.
package completiontest

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/wordsmith/internal/completion"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// Call records one request made to a Stub.
type Call struct {
	System   string
	User     string
	Sampling types.Sampling
}

// Stub answers Complete with Handler and records every call.
// A nil Handler returns an empty string.
type Stub struct {
	Handler func(system, user string) (string, error)

	mu    sync.Mutex
	calls []Call
}

var _ completion.Client = (*Stub)(nil)

// Complete records the call and delegates to Handler.
func (s *Stub) Complete(ctx context.Context, system, user string, sampling types.Sampling) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{System: system, User: user, Sampling: sampling})
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Handler == nil {
		return "", nil
	}
	return s.Handler(system, user)
}

// Calls returns a copy of the recorded calls in order.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many recorded calls satisfy match. A nil match
// counts every call.
func (s *Stub) CallCount(match func(Call) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if match == nil || match(c) {
			n++
		}
	}
	return n
}

package scope

import (
	"errors"

	"github.com/xmidt-org/tracekit/tracing"
)

var (
	// ErrForeignToken indicates a token issued by a different Scope.  The
	// Scope is left unchanged.
	ErrForeignToken = errors.New("token was issued by a different scope")

	// ErrDetachOrder indicates a token detached out of stack order, or a
	// token that was already detached.  The Scope restores the token's prior
	// context when it can; the error is advisory.
	ErrDetachOrder = errors.New("detach order does not mirror attach order")
)

// Token is an opaque handle returned by Attach.  It captures the previously
// active Context so that Detach can restore it.  Tokens are single-use.
type Token struct {
	owner *Scope
	prev  tracing.Context
	id    uint64
}

// Scope is the active-Context slot for one execution path.  A Scope must be
// owned and used by a single goroutine; it performs no locking.  The zero
// value is a valid, empty Scope.
type Scope struct {
	current tracing.Context
	stack   []uint64
	gen     uint64
}

// New constructs an empty Scope.  Equivalent to new(Scope).
func New() *Scope {
	return new(Scope)
}

// Current returns the active Context, which is the empty root Context if
// nothing is attached.
func (s *Scope) Current() tracing.Context {
	return s.current
}

// Attach makes ctx the active Context and returns a Token that restores the
// previous one.  Attaches nest; each Token must be detached in the reverse
// of its attach order.
func (s *Scope) Attach(ctx tracing.Context) Token {
	s.gen++
	token := Token{owner: s, prev: s.current, id: s.gen}
	s.stack = append(s.stack, s.gen)
	s.current = ctx
	return token
}

// Detach restores the Context captured by the given token.
//
// Detaching out of order is a usage error, not a fatal one:  the token's
// captured Context is still restored, any attaches nested above it are
// discarded, and ErrDetachOrder is returned.  A token that was already
// detached returns ErrDetachOrder and leaves the Scope unchanged.  A token
// from another Scope returns ErrForeignToken and leaves the Scope unchanged.
func (s *Scope) Detach(token Token) error {
	if token.owner != s {
		return ErrForeignToken
	}

	n := len(s.stack)
	if n > 0 && s.stack[n-1] == token.id {
		s.stack = s.stack[:n-1]
		s.current = token.prev
		return nil
	}

	for i := n - 1; i >= 0; i-- {
		if s.stack[i] == token.id {
			s.stack = s.stack[:i]
			s.current = token.prev
			return ErrDetachOrder
		}
	}

	// stale: this token was already detached
	return ErrDetachOrder
}

// Depth returns the number of currently attached Contexts.
func (s *Scope) Depth() int {
	return len(s.stack)
}

// Do attaches ctx, invokes f, then detaches.  It is a convenience for the
// common attach/defer-detach pattern around a block of traced work.
func (s *Scope) Do(ctx tracing.Context, f func()) {
	token := s.Attach(ctx)
	defer s.Detach(token)
	f()
}

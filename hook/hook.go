// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package hook adapts a generic three-event instrumentation surface, operation
start, operation stop, and operation exception, onto the tracing core.  Event
dispatch mechanisms that know nothing about tracing can drive a Listener and
get correctly nested, correctly scoped spans out the other side.

The core has no dependency on this package.
*/
package hook

import (
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/tracekit/scope"
	"github.com/xmidt-org/tracekit/tracing"
	"go.uber.org/zap"
)

// ListenerOption represents a configurable option for a Listener
type ListenerOption func(*Listener)

// WithListenerLogger sets the logger used for usage warnings.  If l is nil,
// this option does nothing.
func WithListenerLogger(l *zap.Logger) ListenerOption {
	return func(lst *Listener) {
		if l != nil {
			lst.logger = l
		}
	}
}

// NewListener constructs a Listener driving the given tracer.  The scope may
// be nil, in which case the Listener uses a private one.  Like a Scope, a
// Listener belongs to a single execution path and must not be shared across
// goroutines.
func NewListener(tracer *tracing.Tracer, s *scope.Scope, o ...ListenerOption) *Listener {
	if s == nil {
		s = scope.New()
	}

	l := &Listener{
		tracer: tracer,
		scope:  s,
		logger: sallust.Default(),
	}

	for _, option := range o {
		option(l)
	}

	return l
}

// Listener translates lifecycle events into tracer operations:
//
//	OnStart(name)  ->  Start a span and attach its Context
//	OnStop()       ->  detach and End the innermost span
//	OnException(e) ->  SetStatus(StatusError, e) then detach and End
//
// Events nest:  a start inside an open operation produces a child span.
type Listener struct {
	tracer *tracing.Tracer
	scope  *scope.Scope
	logger *zap.Logger

	open []operation
}

type operation struct {
	span  tracing.Span
	token scope.Token
}

// OnStart begins an operation.  The new span is parented by the innermost
// open operation, if any.
func (l *Listener) OnStart(name string) {
	span, ctx := l.tracer.Start(l.scope.Current(), name)
	l.open = append(l.open, operation{
		span:  span,
		token: l.scope.Attach(ctx),
	})
}

// OnStop ends the innermost open operation.  A stop with no open operation
// is a usage error and is ignored.
func (l *Listener) OnStop() {
	l.finish(nil)
}

// OnException records an error status on the innermost open operation and
// ends it.  The fault itself is expected to keep propagating through the
// application; the Listener only records it.  Passing a nil error behaves
// like OnStop.
func (l *Listener) OnException(err error) {
	l.finish(err)
}

// Depth returns the number of open operations.
func (l *Listener) Depth() int {
	return len(l.open)
}

func (l *Listener) finish(err error) {
	n := len(l.open)
	if n == 0 {
		l.logger.Warn("operation stop without a matching start")
		return
	}

	op := l.open[n-1]
	l.open = l.open[:n-1]

	if err != nil {
		op.span.SetStatus(tracing.StatusError, err.Error())
	}

	if detachErr := l.scope.Detach(op.token); detachErr != nil {
		l.logger.Warn("operation scope detached out of order", zap.Error(detachErr))
	}

	op.span.End()
}

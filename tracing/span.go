package tracing

import (
	// nolint: typecheck
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Kind describes the relationship between a span and its trace neighbors.
type Kind int

const (
	KindInternal Kind = iota
	KindServer
	KindClient
	KindProducer
	KindConsumer
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindProducer:
		return "producer"
	case KindConsumer:
		return "consumer"
	default:
		return "internal"
	}
}

// StatusCode is the coarse disposition of a span.
type StatusCode int

const (
	// StatusUnset is the initial status of every span.  The core never
	// changes it on its own:  an operation that fails without the
	// instrumentation explicitly recording an error still ends Unset.
	StatusUnset StatusCode = iota

	StatusOk
	StatusError
)

func (c StatusCode) String() string {
	switch c {
	case StatusOk:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unset"
	}
}

// Status is the disposition of a span as recorded by instrumentation.
// Last write before End wins.
type Status struct {
	Code    StatusCode
	Message string
}

// Link relates a span to a span in another trace, typically one whose
// identity was received via propagation.  Links are fixed at span creation.
type Link struct {
	SpanContext SpanContext
}

// Event is a timestamped annotation on a span.  Events are append-only while
// the span is open.
type Event struct {
	Name       string
	Time       time.Time
	Attributes map[string]interface{}
}

// Span is a mutable record of one traced operation.  A Span is exclusively
// owned by the execution path that started it:  exactly one goroutine may
// mutate it, until End is called.  After the first End the span is immutable
// and its snapshot has already been handed to the tracer's processors.
//
// Every mutator is safe to call on an ended span and does nothing.
// Instrumentation must never crash or alter the program it observes, so no
// Span method panics or returns an error.
type Span interface {
	// Name is the name of the operation.
	Name() string

	// SpanContext returns the identity fixed at creation.
	SpanContext() SpanContext

	// Parent returns the span id of this span's parent.  Root spans return
	// the zero SpanID.
	Parent() SpanID

	// SetAttribute upserts an attribute local to this span.  Attributes are
	// never propagated; use baggage for values that must follow the trace.
	SetAttribute(key string, value interface{})

	// AddEvent appends a timestamped annotation.
	AddEvent(name string, attributes map[string]interface{})

	// SetStatus records the span disposition.  Last write wins.  The core
	// never calls this itself; see the package documentation for the
	// status contract.
	SetStatus(code StatusCode, message string)

	// End makes the span terminal and delivers its snapshot to each of the
	// tracer's processors.  Only the first call has any effect.
	End(o ...EndOption)

	// Ended reports whether End has been called.
	Ended() bool
}

// EndOption represents a configurable option for ending a Span
type EndOption func(*endConfig)

type endConfig struct {
	endTime time.Time
}

// WithEndTime sets an explicit end time rather than reading the tracer's clock.
func WithEndTime(t time.Time) EndOption {
	return func(c *endConfig) {
		c.endTime = t
	}
}

// span is the internal Span implementation
type span struct {
	tracer *Tracer

	name   string
	sc     SpanContext
	parent SpanID
	kind   Kind
	links  []Link
	start  time.Time

	attributes map[string]interface{}
	events     []Event
	status     Status
	end        time.Time

	state uint32
}

func (s *span) Name() string {
	return s.name
}

func (s *span) SpanContext() SpanContext {
	return s.sc
}

func (s *span) Parent() SpanID {
	return s.parent
}

func (s *span) Ended() bool {
	return atomic.LoadUint32(&s.state) != 0
}

func (s *span) SetAttribute(key string, value interface{}) {
	if s.Ended() {
		s.tracer.logger.Debug("attribute write after span end dropped",
			zap.String("span", s.name), zap.String("key", key))
		return
	}

	if s.attributes == nil {
		s.attributes = make(map[string]interface{})
	}

	s.attributes[key] = value
}

func (s *span) AddEvent(name string, attributes map[string]interface{}) {
	if s.Ended() {
		s.tracer.logger.Debug("event after span end dropped",
			zap.String("span", s.name), zap.String("event", name))
		return
	}

	var copied map[string]interface{}
	if len(attributes) > 0 {
		copied = make(map[string]interface{}, len(attributes))
		for k, v := range attributes {
			copied[k] = v
		}
	}

	s.events = append(s.events, Event{
		Name:       name,
		Time:       s.tracer.clock.Now(),
		Attributes: copied,
	})
}

func (s *span) SetStatus(code StatusCode, message string) {
	if s.Ended() {
		s.tracer.logger.Debug("status write after span end dropped",
			zap.String("span", s.name))
		return
	}

	s.status = Status{Code: code, Message: message}
}

func (s *span) End(o ...EndOption) {
	var cfg endConfig
	for _, option := range o {
		option(&cfg)
	}

	if !atomic.CompareAndSwapUint32(&s.state, 0, 1) {
		s.tracer.logger.Debug("span ended more than once", zap.String("span", s.name))
		return
	}

	s.end = cfg.endTime
	if s.end.IsZero() {
		s.end = s.start.Add(s.tracer.clock.Since(s.start))
	}

	// uphold the end >= start invariant for downstream processors
	if s.end.Before(s.start) {
		s.end = s.start
	}

	snapshot := s.snapshot()
	for _, p := range s.tracer.processors {
		p.OnEnd(snapshot)
	}
}

func (s *span) snapshot() SpanSnapshot {
	snapshot := SpanSnapshot{
		Name:        s.name,
		SpanContext: s.sc,
		Parent:      s.parent,
		Kind:        s.kind,
		StartTime:   s.start,
		EndTime:     s.end,
		Status:      s.status,
	}

	if len(s.attributes) > 0 {
		snapshot.Attributes = make(map[string]interface{}, len(s.attributes))
		for k, v := range s.attributes {
			snapshot.Attributes[k] = v
		}
	}

	if len(s.events) > 0 {
		snapshot.Events = make([]Event, len(s.events))
		copy(snapshot.Events, s.events)
	}

	if len(s.links) > 0 {
		snapshot.Links = make([]Link, len(s.links))
		copy(snapshot.Links, s.links)
	}

	return snapshot
}

package tracing

import (
	"time"

	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/tracekit/clock"
	"go.uber.org/zap"
)

// Option represents a configurable option for a Tracer
type Option func(*Tracer)

// WithProcessor adds processors that will receive every completed span.
// Nil processors are ignored.
func WithProcessor(p ...Processor) Option {
	return func(t *Tracer) {
		for _, each := range p {
			if each != nil {
				t.processors = append(t.processors, each)
			}
		}
	}
}

// WithIDGenerator sets the identifier source.  If g is nil, this option does nothing.
func WithIDGenerator(g IDGenerator) Option {
	return func(t *Tracer) {
		if g != nil {
			t.ids = g
		}
	}
}

// WithLogger sets the logger used for usage warnings.  If l is nil, this option does nothing.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock sets the time source for span timestamps.  If c is nil, this option does nothing.
func WithClock(c clock.Interface) Option {
	return func(t *Tracer) {
		if c != nil {
			t.clock = c
		}
	}
}

// New constructs a Tracer from a set of options.  With no options, the
// Tracer uses random identifiers, the system clock, the sallust default
// logger, and no processors.
func New(o ...Option) *Tracer {
	t := &Tracer{
		ids:    RandomIDs(),
		logger: sallust.Default(),
		clock:  clock.System(),
	}

	for _, option := range o {
		option(t)
	}

	return t
}

// Tracer is the factory for spans.  A Tracer is immutable once constructed
// and safe for concurrent use by multiple goroutines.
type Tracer struct {
	processors []Processor
	ids        IDGenerator
	logger     *zap.Logger
	clock      clock.Interface
}

// SpanOption represents a configurable option for starting a span
type SpanOption func(*spanConfig)

type spanConfig struct {
	parent     SpanContext
	hasParent  bool
	kind       Kind
	links      []Link
	startTime  time.Time
	attributes map[string]interface{}
}

// WithParent overrides the parent that would otherwise be read from the
// Context passed to Start.  This is how a span adopts a remote parent whose
// Context was never attached, and how spawned work decouples its lifetime
// from a live parent span by keying off a copied identity instead.
func WithParent(sc SpanContext) SpanOption {
	return func(c *spanConfig) {
		c.parent = sc
		c.hasParent = true
	}
}

// WithKind sets the span kind.  The default is KindInternal.
func WithKind(k Kind) SpanOption {
	return func(c *spanConfig) {
		c.kind = k
	}
}

// WithLinks adds links to spans in other traces.  Links are fixed at creation.
func WithLinks(links ...Link) SpanOption {
	return func(c *spanConfig) {
		c.links = append(c.links, links...)
	}
}

// WithStartTime sets an explicit start time rather than reading the tracer's clock.
func WithStartTime(t time.Time) SpanOption {
	return func(c *spanConfig) {
		c.startTime = t
	}
}

// WithAttributes sets initial attributes on the new span.
func WithAttributes(attributes map[string]interface{}) SpanOption {
	return func(c *spanConfig) {
		if len(attributes) == 0 {
			return
		}

		if c.attributes == nil {
			c.attributes = make(map[string]interface{}, len(attributes))
		}

		for k, v := range attributes {
			c.attributes[k] = v
		}
	}
}

// Start creates a new open span together with a Context derived from ctx in
// which the new span is current.  The parent is ctx's current span unless
// WithParent overrides it.  A span started with no valid parent is a root
// span:  it begins a new trace and has no parent id.
//
// Start does not install the returned Context anywhere.  Callers scope
// nested work by attaching it to their own scope.Scope, and detaching when
// the work completes.
func (t *Tracer) Start(ctx Context, name string, o ...SpanOption) (Span, Context) {
	cfg := spanConfig{kind: KindInternal}
	for _, option := range o {
		option(&cfg)
	}

	parent := ctx.SpanContext()
	if cfg.hasParent {
		parent = cfg.parent
	}

	var (
		sc       = SpanContext{SpanID: t.ids.NewSpanID(), Sampled: true}
		parentID SpanID
	)

	if parent.IsValid() {
		sc.TraceID = parent.TraceID
		sc.Sampled = parent.Sampled
		parentID = parent.SpanID
	} else {
		sc.TraceID = t.ids.NewTraceID()
	}

	start := cfg.startTime
	if start.IsZero() {
		start = t.clock.Now()
	}

	s := &span{
		tracer:     t,
		name:       name,
		sc:         sc,
		parent:     parentID,
		kind:       cfg.kind,
		links:      cfg.links,
		start:      start,
		attributes: cfg.attributes,
	}

	return s, ctx.WithSpanContext(sc)
}

package tracing

// Context is an immutable snapshot of the current span identity and baggage
// at one logical point in execution.  Contexts are plain values:  deriving a
// new Context never affects the one it derives from, and a Context captured
// before a mutation will not observe that mutation.  The zero value is the
// empty root Context.
//
// Contexts are never implicitly inherited across goroutines.  Code that
// spawns a goroutine must capture the Context value first and attach it
// inside the spawned goroutine, typically via a scope.Scope.
type Context struct {
	span    SpanContext
	baggage Baggage
}

// Root returns the empty root Context.  It is equivalent to the zero value.
func Root() Context {
	return Context{}
}

// SpanContext returns the current span identity.  The result is invalid when
// no span is current.
func (c Context) SpanContext() SpanContext {
	return c.span
}

// WithSpanContext derives a Context in which the given span identity is current.
func (c Context) WithSpanContext(sc SpanContext) Context {
	c.span = sc
	return c
}

// Baggage returns the baggage carried by this Context.
func (c Context) Baggage() Baggage {
	return c.baggage
}

// WithBaggage derives a Context carrying the given Baggage.
func (c Context) WithBaggage(b Baggage) Context {
	c.baggage = b
	return c
}

// SetBaggage derives a Context whose baggage has the given entry upserted.
func (c Context) SetBaggage(key, value string) Context {
	c.baggage = c.baggage.Set(key, value)
	return c
}

// BaggageValue returns the baggage value for the given key, if present.
func (c Context) BaggageValue(key string) (string, bool) {
	return c.baggage.Get(key)
}

// RemoveBaggage derives a Context whose baggage lacks the given key.
func (c Context) RemoveBaggage(key string) Context {
	c.baggage = c.baggage.Remove(key)
	return c
}

// Dump renders this Context as a plain mapping for diagnostic output, e.g.
// structured log fields.  It is not a wire format; use the propagation
// package to transport a Context across a process boundary.
func (c Context) Dump() map[string]interface{} {
	out := make(map[string]interface{})
	if c.span.IsValid() {
		out["traceID"] = c.span.TraceID.String()
		out["spanID"] = c.span.SpanID.String()
		out["sampled"] = c.span.Sampled
		out["remote"] = c.span.Remote
	}

	if c.baggage.Len() > 0 {
		out["baggage"] = c.baggage.Map()
	}

	return out
}

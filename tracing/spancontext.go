package tracing

// SpanContext is the identity portion of a span:  the part that is safe to
// copy, hand across goroutines, and propagate across process boundaries.
// SpanContext values are comparable.  The zero value is invalid and
// represents the absence of a current span.
type SpanContext struct {
	// TraceID identifies the trace this span belongs to.
	TraceID TraceID

	// SpanID identifies this span within its trace.
	SpanID SpanID

	// Sampled indicates whether this trace was selected for recording.
	// Children inherit this flag from their parent.
	Sampled bool

	// Remote marks an identity received via propagation.  The receiver does
	// not own the remote span and cannot end it, only use it as a parent or
	// as a link.
	Remote bool
}

// IsValid tests whether both the trace id and span id are valid.
func (sc SpanContext) IsValid() bool {
	return sc.TraceID.IsValid() && sc.SpanID.IsValid()
}

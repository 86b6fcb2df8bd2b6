package tracing

// Processor receives completed spans.  OnEnd is invoked exactly once per
// span, on the goroutine that ended it.  Implementations must not block that
// goroutine indefinitely; buffering and batching are the processor's concern.
type Processor interface {
	OnEnd(SpanSnapshot)
}

// ProcessorFunc is a function type that implements Processor.
type ProcessorFunc func(SpanSnapshot)

func (f ProcessorFunc) OnEnd(s SpanSnapshot) {
	f(s)
}

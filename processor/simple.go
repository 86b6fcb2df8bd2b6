package processor

import "github.com/xmidt-org/tracekit/tracing"

// Simple returns a Processor that forwards each completed span to the
// exporter synchronously, on the goroutine that ended the span.  Appropriate
// for tests and for exporters that are already fast and non-blocking.
func Simple(e Exporter) tracing.Processor {
	if e == nil {
		e = Discard()
	}

	return tracing.ProcessorFunc(func(s tracing.SpanSnapshot) {
		e.Export(s)
	})
}

package processor

import (
	"github.com/go-kit/log"
	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/tracekit/tracing"
	"go.uber.org/zap"
)

// Exporter sends completed spans toward their final destination.  An
// Exporter must tolerate adversarial snapshots, such as hand-built ones
// whose end time precedes their start time, without crashing.
type Exporter interface {
	Export(...tracing.SpanSnapshot)
}

// ExporterFunc is a function type that implements Exporter.
type ExporterFunc func(...tracing.SpanSnapshot)

func (f ExporterFunc) Export(spans ...tracing.SpanSnapshot) {
	f(spans...)
}

// Discard returns an Exporter that does nothing.
func Discard() Exporter {
	return ExporterFunc(func(...tracing.SpanSnapshot) {})
}

// NewZapExporter produces an Exporter that writes one structured log entry
// per span.  If logger is nil, sallust.Default() is used.
func NewZapExporter(logger *zap.Logger) Exporter {
	if logger == nil {
		logger = sallust.Default()
	}

	return ExporterFunc(func(spans ...tracing.SpanSnapshot) {
		for _, s := range spans {
			logger.Info("span completed", zap.Any("span", s.Dump()))
		}
	})
}

// NewLogExporter produces an Exporter that emits one go-kit log event per
// span, for applications still on a go-kit logging stack.  If logger is nil,
// a NOP logger is used.
func NewLogExporter(logger log.Logger) Exporter {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return ExporterFunc(func(spans ...tracing.SpanSnapshot) {
		for _, s := range spans {
			dump := s.Dump()
			keyvals := make([]interface{}, 0, 2*len(dump))
			for k, v := range dump {
				keyvals = append(keyvals, k, v)
			}

			logger.Log(keyvals...)
		}
	})
}

package processor

import (
	"github.com/go-kit/kit/metrics/discard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/tracekit/tracing"
)

// Adder is the counter abstraction used by instrumented processors.  Both
// go-kit counters and prometheus counters satisfy it.
type Adder interface {
	Add(float64)
}

// InstrumentOption represents a configurable option for instrumenting a processor
type InstrumentOption func(*instrumentedProcessor)

// WithCompleted establishes a metric counting every span the decorated
// processor receives.  If a nil counter is supplied, completions are discarded.
func WithCompleted(a Adder) InstrumentOption {
	return func(i *instrumentedProcessor) {
		if a != nil {
			i.completed = a
		} else {
			i.completed = discard.NewCounter()
		}
	}
}

// WithErrored establishes a metric counting received spans whose status is
// StatusError.  If a nil counter is supplied, error counts are discarded.
func WithErrored(a Adder) InstrumentOption {
	return func(i *instrumentedProcessor) {
		if a != nil {
			i.errored = a
		} else {
			i.errored = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing processor with a set of options.  A nil
// processor is replaced with one that discards spans, so the decorator still
// counts them.
func Instrument(p tracing.Processor, o ...InstrumentOption) tracing.Processor {
	if p == nil {
		p = Simple(nil)
	}

	ip := &instrumentedProcessor{
		Processor: p,
		completed: discard.NewCounter(),
		errored:   discard.NewCounter(),
	}

	for _, f := range o {
		f(ip)
	}

	return ip
}

type instrumentedProcessor struct {
	tracing.Processor
	completed Adder
	errored   Adder
}

func (ip *instrumentedProcessor) OnEnd(s tracing.SpanSnapshot) {
	ip.Processor.OnEnd(s)
	ip.completed.Add(1.0)
	if s.Status.Code == tracing.StatusError {
		ip.errored.Add(1.0)
	}
}

// Measures holds prometheus-backed counters suitable for Instrument.
type Measures struct {
	Completed prometheus.Counter
	Errored   prometheus.Counter
}

// NewMeasures constructs and registers the standard span counters.  The
// registerer may be nil, in which case the counters are created unregistered.
func NewMeasures(namespace, subsystem string, r prometheus.Registerer) (*Measures, error) {
	m := &Measures{
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "spans_completed_total",
			Help:      "the total count of completed spans",
		}),
		Errored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "spans_errored_total",
			Help:      "the total count of completed spans with error status",
		}),
	}

	if r != nil {
		for _, c := range []prometheus.Collector{m.Completed, m.Errored} {
			if err := r.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

package processor

import (
	"sync"
	// nolint: typecheck
	"sync/atomic"

	"github.com/xmidt-org/tracekit/clock"
	"github.com/xmidt-org/tracekit/tracing"
	"go.uber.org/zap"
)

// Batch is a Processor that buffers completed spans and hands them to an
// Exporter in batches:  when a batch fills, when the flush interval elapses,
// when Flush is called, and once more at Stop.  OnEnd never blocks the
// goroutine that ended the span; if the buffer is full, the span is dropped
// and counted instead.
type Batch struct {
	exporter Exporter
	logger   *zap.Logger

	spans         chan tracing.SpanSnapshot
	flushRequests chan chan struct{}
	quit          chan struct{}
	done          chan struct{}

	maxBatchSize int
	dropped      uint64
	stopOnce     sync.Once
}

var _ tracing.Processor = (*Batch)(nil)

// NewBatch starts a Batch processor delivering to the given exporter.  The
// options may be nil for all defaults.  Callers should Stop the returned
// Batch when finished with it to flush buffered spans and release its
// goroutine.
func NewBatch(e Exporter, o *BatchOptions) *Batch {
	if e == nil {
		e = Discard()
	}

	b := &Batch{
		exporter:      e,
		logger:        o.logger(),
		spans:         make(chan tracing.SpanSnapshot, o.capacity()),
		flushRequests: make(chan chan struct{}),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
		maxBatchSize:  o.maxBatchSize(),
	}

	go b.run(o.clock().NewTicker(o.flushInterval()))
	return b
}

func (b *Batch) OnEnd(s tracing.SpanSnapshot) {
	select {
	case b.spans <- s:
	default:
		if atomic.AddUint64(&b.dropped, 1) == 1 {
			b.logger.Warn("span buffer full, dropping spans")
		}
	}
}

// Dropped returns the number of spans dropped because the buffer was full.
func (b *Batch) Dropped() uint64 {
	return atomic.LoadUint64(&b.dropped)
}

// Flush exports everything currently buffered and blocks until that export
// completes.  Calling Flush on a stopped Batch returns immediately.
func (b *Batch) Flush() {
	ack := make(chan struct{})
	select {
	case b.flushRequests <- ack:
		<-ack
	case <-b.done:
	}
}

// Stop flushes buffered spans and shuts down the export goroutine.  Stop is
// idempotent and blocks until shutdown is complete.  Spans ending after Stop
// accumulate in the buffer until it fills, then are dropped.
func (b *Batch) Stop() {
	b.stopOnce.Do(func() {
		close(b.quit)
	})

	<-b.done
}

func (b *Batch) run(ticker clock.Ticker) {
	defer close(b.done)
	defer ticker.Stop()

	batch := make([]tracing.SpanSnapshot, 0, b.maxBatchSize)
	for {
		select {
		case s := <-b.spans:
			batch = append(batch, s)
			if len(batch) >= b.maxBatchSize {
				batch = b.export(batch)
			}

		case <-ticker.C():
			batch = b.export(batch)

		case ack := <-b.flushRequests:
			batch = b.export(b.drain(batch))
			close(ack)

		case <-b.quit:
			b.export(b.drain(batch))
			return
		}
	}
}

// drain empties the buffer channel without blocking
func (b *Batch) drain(batch []tracing.SpanSnapshot) []tracing.SpanSnapshot {
	for {
		select {
		case s := <-b.spans:
			batch = append(batch, s)
		default:
			return batch
		}
	}
}

func (b *Batch) export(batch []tracing.SpanSnapshot) []tracing.SpanSnapshot {
	if len(batch) == 0 {
		return batch
	}

	b.exporter.Export(batch...)
	return batch[:0]
}

package processor

import (
	"time"

	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/tracekit/clock"
	"github.com/xmidt-org/tracekit/types"
	"go.uber.org/zap"
)

const (
	// DefaultCapacity is the size of the Batch buffer when none is configured.
	DefaultCapacity = 2048

	// DefaultMaxBatchSize is the export batch size when none is configured.
	DefaultMaxBatchSize = 512

	// DefaultFlushInterval is the periodic flush interval when none is configured.
	DefaultFlushInterval = 5 * time.Second
)

// BatchOptions is the externally configurable state for a Batch processor.
// A nil *BatchOptions is valid and yields all defaults.
type BatchOptions struct {
	// Capacity is the size of the bounded buffer between ending spans and
	// the export goroutine.  Spans completed while the buffer is full are
	// dropped and counted.  If unset, DefaultCapacity is used.
	Capacity int `json:"capacity"`

	// MaxBatchSize is the number of buffered spans that triggers an export
	// ahead of the flush interval.  If unset, DefaultMaxBatchSize is used.
	MaxBatchSize int `json:"maxBatchSize"`

	// FlushInterval is how often buffered spans are exported regardless of
	// batch size.  If unset, DefaultFlushInterval is used.
	FlushInterval types.Duration `json:"flushInterval"`

	// Logger receives drop warnings.  If unset, sallust.Default() is used.
	Logger *zap.Logger `json:"-"`

	// Clock drives the flush ticker.  If unset, the system clock is used.
	Clock clock.Interface `json:"-"`
}

func (o *BatchOptions) capacity() int {
	if o != nil && o.Capacity > 0 {
		return o.Capacity
	}

	return DefaultCapacity
}

func (o *BatchOptions) maxBatchSize() int {
	if o != nil && o.MaxBatchSize > 0 {
		return o.MaxBatchSize
	}

	return DefaultMaxBatchSize
}

func (o *BatchOptions) flushInterval() time.Duration {
	if o != nil && o.FlushInterval > 0 {
		return time.Duration(o.FlushInterval)
	}

	return DefaultFlushInterval
}

func (o *BatchOptions) logger() *zap.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}

	return sallust.Default()
}

func (o *BatchOptions) clock() clock.Interface {
	if o != nil && o.Clock != nil {
		return o.Clock
	}

	return clock.System()
}

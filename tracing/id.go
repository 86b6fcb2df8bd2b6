package tracing

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// TraceID is the fixed-width identifier shared by every span in a single trace.
// The zero value is invalid.
type TraceID [16]byte

// SpanID is the fixed-width identifier of one span within a trace.
// The zero value is invalid.
type SpanID [8]byte

var (
	ErrInvalidTraceID = errors.New("trace ids must be 32 lowercase hex characters and nonzero")
	ErrInvalidSpanID  = errors.New("span ids must be 16 lowercase hex characters and nonzero")
)

// IsValid tests whether this TraceID is nonzero
func (t TraceID) IsValid() bool {
	return t != TraceID{}
}

// String returns the lowercase hex encoding of this TraceID
func (t TraceID) String() string {
	return hex.EncodeToString(t[:])
}

// IsValid tests whether this SpanID is nonzero
func (s SpanID) IsValid() bool {
	return s != SpanID{}
}

// String returns the lowercase hex encoding of this SpanID
func (s SpanID) String() string {
	return hex.EncodeToString(s[:])
}

// ParseTraceID parses the representation produced by TraceID.String.
func ParseTraceID(v string) (TraceID, error) {
	var t TraceID
	if len(v) != 2*len(t) || v != strings.ToLower(v) {
		return TraceID{}, ErrInvalidTraceID
	}

	decoded, err := hex.DecodeString(v)
	if err != nil {
		return TraceID{}, ErrInvalidTraceID
	}

	copy(t[:], decoded)
	if !t.IsValid() {
		return TraceID{}, ErrInvalidTraceID
	}

	return t, nil
}

// ParseSpanID parses the representation produced by SpanID.String.
func ParseSpanID(v string) (SpanID, error) {
	var s SpanID
	if len(v) != 2*len(s) || v != strings.ToLower(v) {
		return SpanID{}, ErrInvalidSpanID
	}

	decoded, err := hex.DecodeString(v)
	if err != nil {
		return SpanID{}, ErrInvalidSpanID
	}

	copy(s[:], decoded)
	if !s.IsValid() {
		return SpanID{}, ErrInvalidSpanID
	}

	return s, nil
}

// IDGenerator creates trace and span identifiers.  Implementations must be
// safe for concurrent use by multiple goroutines.
type IDGenerator interface {
	NewTraceID() TraceID
	NewSpanID() SpanID
}

// RandomIDs returns an IDGenerator drawing identifiers from the random source
// behind github.com/google/uuid.  A version 4 UUID is sixteen random bytes,
// which is exactly a TraceID.  Span ids use the leading eight bytes of a
// separate UUID.
func RandomIDs() IDGenerator {
	return randomIDGenerator{}
}

type randomIDGenerator struct{}

func (randomIDGenerator) NewTraceID() TraceID {
	// the version and variant bits guarantee a nonzero value
	return TraceID(uuid.New())
}

func (randomIDGenerator) NewSpanID() SpanID {
	var s SpanID
	for {
		u := uuid.New()
		copy(s[:], u[:len(s)])
		if s.IsValid() {
			return s
		}
	}
}

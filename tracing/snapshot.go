package tracing

import (
	"time"

	"github.com/spf13/cast"
)

// SpanSnapshot is the immutable record of a completed span.  Each Processor
// receives each snapshot exactly once.  Snapshots built by this package
// always have EndTime >= StartTime; processors reused standalone should
// still tolerate hand-built snapshots that violate that.
type SpanSnapshot struct {
	Name        string
	SpanContext SpanContext
	Parent      SpanID
	Kind        Kind
	StartTime   time.Time
	EndTime     time.Time
	Attributes  map[string]interface{}
	Events      []Event
	Status      Status
	Links       []Link
}

// Duration is how long the operation took.
func (s SpanSnapshot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Dump renders this snapshot as a plain mapping for diagnostic output.
// Attribute values are coerced to strings.  Not a wire format.
func (s SpanSnapshot) Dump() map[string]interface{} {
	out := map[string]interface{}{
		"name":     s.Name,
		"traceID":  s.SpanContext.TraceID.String(),
		"spanID":   s.SpanContext.SpanID.String(),
		"kind":     s.Kind.String(),
		"start":    s.StartTime.UTC().Format(time.RFC3339Nano),
		"duration": s.Duration().String(),
		"status":   s.Status.Code.String(),
	}

	if s.Parent.IsValid() {
		out["parent"] = s.Parent.String()
	}

	if len(s.Status.Message) > 0 {
		out["statusMessage"] = s.Status.Message
	}

	if len(s.Attributes) > 0 {
		attributes := make(map[string]string, len(s.Attributes))
		for k, v := range s.Attributes {
			attributes[k] = cast.ToString(v)
		}

		out["attributes"] = attributes
	}

	if len(s.Events) > 0 {
		events := make([]string, 0, len(s.Events))
		for _, e := range s.Events {
			events = append(events, e.Name)
		}

		out["events"] = events
	}

	if len(s.Links) > 0 {
		links := make([]string, 0, len(s.Links))
		for _, l := range s.Links {
			links = append(links, l.SpanContext.TraceID.String()+":"+l.SpanContext.SpanID.String())
		}

		out["links"] = links
	}

	return out
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package propagation converts a tracing.Context to and from a flat string
keyed carrier for cross-process transport.

The wire shape is stable and intentionally small:

	traceparent    00-<32 hex trace id>-<16 hex span id>-<2 hex flags>
	baggage        <key>=<value>[,<key>=<value>...]

The flags byte currently carries only the sampled bit (0x01).  Baggage is
packed into a single carrier key, with each key and value percent-encoded,
entries joined by commas, and keys written in sorted order.  Packing keeps
user baggage keys out of the carrier key namespace, where transports such as
HTTP headers impose their own casing rules; both keys and values round-trip
byte-exactly.

Extraction never fails the caller.  A malformed or missing traceparent yields
a Context with no current span; a malformed baggage entry is skipped.
*/
package propagation

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/xmidt-org/tracekit/tracing"
)

const (
	// TraceParentKey is the carrier key holding the span identity.
	TraceParentKey = "traceparent"

	// BaggageKey is the carrier key holding the packed baggage entries.
	BaggageKey = "baggage"

	// Version is the only traceparent version this package produces.
	Version = "00"

	sampledFlag = 0x01
)

// Inject writes ctx's span identity and full baggage into the carrier.  If
// ctx has no valid current span, no traceparent key is written; baggage is
// written regardless.
func Inject(ctx tracing.Context, c Carrier) {
	if sc := ctx.SpanContext(); sc.IsValid() {
		flags := 0
		if sc.Sampled {
			flags = sampledFlag
		}

		c.Set(TraceParentKey, fmt.Sprintf("%s-%s-%s-%02x", Version, sc.TraceID, sc.SpanID, flags))
	}

	if b := ctx.Baggage(); b.Len() > 0 {
		entries := make([]string, 0, b.Len())
		b.Walk(func(key, value string) bool {
			entries = append(entries, url.QueryEscape(key)+"="+url.QueryEscape(value))
			return true
		})

		sort.Strings(entries)
		c.Set(BaggageKey, strings.Join(entries, ","))
	}
}

// Extract builds a Context from the carrier.  The extracted span identity is
// marked Remote:  the receiver does not own that span and can only use it as
// a parent or link.  Whatever parts of the carrier are malformed or absent
// simply do not appear in the result; Extract never returns an error.
func Extract(c Carrier) tracing.Context {
	ctx := tracing.Root()

	if sc, ok := parseTraceParent(c.Get(TraceParentKey)); ok {
		ctx = ctx.WithSpanContext(sc)
	}

	if entries := parseBaggage(c.Get(BaggageKey)); len(entries) > 0 {
		ctx = ctx.WithBaggage(tracing.NewBaggage(entries))
	}

	return ctx
}

func parseBaggage(v string) map[string]string {
	if len(v) == 0 {
		return nil
	}

	entries := make(map[string]string)
	for _, entry := range strings.Split(v, ",") {
		escapedKey, escapedValue, found := strings.Cut(entry, "=")
		if !found {
			continue
		}

		key, err := url.QueryUnescape(escapedKey)
		if err != nil || len(key) == 0 {
			continue
		}

		value, err := url.QueryUnescape(escapedValue)
		if err != nil {
			continue
		}

		entries[key] = value
	}

	return entries
}

func parseTraceParent(v string) (tracing.SpanContext, bool) {
	parts := strings.Split(v, "-")
	if len(parts) != 4 || parts[0] != Version {
		return tracing.SpanContext{}, false
	}

	traceID, err := tracing.ParseTraceID(parts[1])
	if err != nil {
		return tracing.SpanContext{}, false
	}

	spanID, err := tracing.ParseSpanID(parts[2])
	if err != nil {
		return tracing.SpanContext{}, false
	}

	flags, err := hex.DecodeString(parts[3])
	if err != nil || len(flags) != 1 {
		return tracing.SpanContext{}, false
	}

	return tracing.SpanContext{
		TraceID: traceID,
		SpanID:  spanID,
		Sampled: flags[0]&sampledFlag != 0,
		Remote:  true,
	}, true
}

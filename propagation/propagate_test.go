// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package propagation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/tracekit/tracing"
)

var (
	testTraceID = tracing.TraceID{0xca, 0xfe, 0xba, 0xbe, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	testSpanID  = tracing.SpanID{0xde, 0xad, 0xbe, 0xef, 1, 2, 3, 4}
)

func testPropagateRoundTrip(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		original = tracing.Root().
				WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID, Sampled: true}).
				SetBaggage("tenant", "red").
				SetBaggage("request", "abc=123,def; ghi/jkl%").
				SetBaggage("Mixed-Case Key", "preserved").
				SetBaggage("empty", "")

		carrier = MapCarrier{}
	)

	Inject(original, carrier)
	extracted := Extract(carrier)

	// baggage survives byte-exactly, keys and values both
	assert.Equal(original.Baggage().Map(), extracted.Baggage().Map())

	sc := extracted.SpanContext()
	require.True(sc.IsValid())
	assert.Equal(testTraceID, sc.TraceID)
	assert.Equal(testSpanID, sc.SpanID)
	assert.True(sc.Sampled)
	assert.True(sc.Remote)
}

func testPropagateWireShape(t *testing.T) {
	var (
		assert = assert.New(t)

		ctx = tracing.Root().
			WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID, Sampled: true}).
			SetBaggage("tenant", "red blue").
			SetBaggage("user", "fred")

		carrier = MapCarrier{}
	)

	Inject(ctx, carrier)

	assert.Equal(
		"00-"+testTraceID.String()+"-"+testSpanID.String()+"-01",
		carrier[TraceParentKey],
	)

	// entries are sorted by key, keys and values percent-encoded
	assert.Equal("tenant=red+blue,user=fred", carrier[BaggageKey])
	assert.Len(carrier, 2)
}

func testPropagateUnsampled(t *testing.T) {
	var (
		assert = assert.New(t)

		ctx = tracing.Root().
			WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID})

		carrier = MapCarrier{}
	)

	Inject(ctx, carrier)
	assert.True(strings.HasSuffix(carrier[TraceParentKey], "-00"))
	assert.False(Extract(carrier).SpanContext().Sampled)
}

func testPropagateNoCurrentSpan(t *testing.T) {
	var (
		assert = assert.New(t)

		ctx     = tracing.Root().SetBaggage("tenant", "red")
		carrier = MapCarrier{}
	)

	Inject(ctx, carrier)

	_, hasTraceParent := carrier[TraceParentKey]
	assert.False(hasTraceParent)

	extracted := Extract(carrier)
	assert.False(extracted.SpanContext().IsValid())

	v, ok := extracted.BaggageValue("tenant")
	assert.True(ok)
	assert.Equal("red", v)
}

func testPropagateEmptyBaggage(t *testing.T) {
	var (
		assert = assert.New(t)

		ctx = tracing.Root().
			WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID, Sampled: true})

		carrier = MapCarrier{}
	)

	Inject(ctx, carrier)

	_, hasBaggage := carrier[BaggageKey]
	assert.False(hasBaggage)
	assert.Len(carrier, 1)
}

func testPropagateMalformed(t *testing.T) {
	var (
		assert = assert.New(t)

		valid = "00-" + testTraceID.String() + "-" + testSpanID.String() + "-01"

		testData = []MapCarrier{
			{},
			{TraceParentKey: ""},
			{TraceParentKey: "garbage"},
			{TraceParentKey: "zz-" + valid[3:]},
			{TraceParentKey: "00-short-" + testSpanID.String() + "-01"},
			{TraceParentKey: "00-" + testTraceID.String() + "-short-01"},
			{TraceParentKey: valid + "-extra"},
			{TraceParentKey: strings.Replace(valid, "-01", "-zz", 1)},
			{TraceParentKey: "00-" + strings.Repeat("0", 32) + "-" + testSpanID.String() + "-01"},
		}
	)

	for _, carrier := range testData {
		t.Logf("%#v", carrier)
		extracted := Extract(carrier)
		assert.Equal(tracing.Root(), extracted)
	}
}

func testPropagateBadBaggageSkipped(t *testing.T) {
	var (
		assert = assert.New(t)

		carrier = MapCarrier{
			BaggageKey: "good=fine,bad=%zz,%zz=badkey,=nokey,noequals,nested=a%3Db",
		}
	)

	extracted := Extract(carrier)
	assert.Equal(
		map[string]string{"good": "fine", "nested": "a=b"},
		extracted.Baggage().Map(),
	)
}

// Baggage transported over HTTP must come back under the exact key it was
// set with.  Header names are canonicalized by net/http, so this only holds
// because baggage keys travel inside the header value.
func testPropagateHeaderCarrier(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		ctx = tracing.Root().
			WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID, Sampled: true}).
			SetBaggage("tenant", "red blue/green").
			SetBaggage("Session-ID", "abc123")

		header = make(http.Header)
	)

	Inject(ctx, HeaderCarrier(header))
	assert.NotEmpty(header.Get("Traceparent"))
	assert.NotEmpty(header.Get("Baggage"))

	extracted := Extract(HeaderCarrier(header))
	require.True(extracted.SpanContext().IsValid())
	assert.Equal(testTraceID, extracted.SpanContext().TraceID)
	assert.Equal(testSpanID, extracted.SpanContext().SpanID)

	assert.Equal(ctx.Baggage().Map(), extracted.Baggage().Map())

	v, ok := extracted.BaggageValue("tenant")
	require.True(ok)
	assert.Equal("red blue/green", v)

	v, ok = extracted.BaggageValue("Session-ID")
	require.True(ok)
	assert.Equal("abc123", v)
}

func testPropagateRemoteParent(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		tracer  = tracing.New()
		carrier = MapCarrier{}
	)

	Inject(
		tracing.Root().WithSpanContext(tracing.SpanContext{TraceID: testTraceID, SpanID: testSpanID, Sampled: true}),
		carrier,
	)

	// receiving side: the remote identity parents the first local span
	extracted := Extract(carrier)
	require.True(extracted.SpanContext().Remote)

	s, _ := tracer.Start(extracted, "server")
	assert.Equal(testTraceID, s.SpanContext().TraceID)
	assert.Equal(testSpanID, s.Parent())
	assert.False(s.SpanContext().Remote)
}

func TestPropagate(t *testing.T) {
	t.Run("RoundTrip", testPropagateRoundTrip)
	t.Run("WireShape", testPropagateWireShape)
	t.Run("Unsampled", testPropagateUnsampled)
	t.Run("NoCurrentSpan", testPropagateNoCurrentSpan)
	t.Run("EmptyBaggage", testPropagateEmptyBaggage)
	t.Run("Malformed", testPropagateMalformed)
	t.Run("BadBaggageSkipped", testPropagateBadBaggageSkipped)
	t.Run("HeaderCarrier", testPropagateHeaderCarrier)
	t.Run("RemoteParent", testPropagateRemoteParent)
}

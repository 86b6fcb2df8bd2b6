// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// captureTracer builds a tracer whose completed snapshots are appended to the
// returned slice pointer.
func captureTracer(o ...Option) (*Tracer, *[]SpanSnapshot) {
	var captured []SpanSnapshot
	o = append(o, WithProcessor(ProcessorFunc(func(s SpanSnapshot) {
		captured = append(captured, s)
	})))

	return New(o...), &captured
}

func testSpanEndIsIdempotent(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		processor = new(mockProcessor)
		tracer    = New(WithProcessor(processor))
	)

	processor.On("OnEnd", mock.AnythingOfType("tracing.SpanSnapshot")).Once()

	s, _ := tracer.Start(Root(), "test")
	require.False(s.Ended())

	s.End()
	assert.True(s.Ended())

	s.End()
	s.End(WithEndTime(time.Now().Add(time.Hour)))

	processor.AssertExpectations(t)
	processor.AssertNumberOfCalls(t, "OnEnd", 1)
}

func testSpanWritesAfterEndAreDropped(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		tracer, captured = captureTracer()
	)

	s, _ := tracer.Start(Root(), "test")
	s.SetAttribute("before", "yes")
	s.AddEvent("before", nil)
	s.SetStatus(StatusOk, "")
	s.End()

	s.SetAttribute("after", "no")
	s.AddEvent("after", nil)
	s.SetStatus(StatusError, "too late")

	require.Len(*captured, 1)
	snapshot := (*captured)[0]

	assert.Equal(map[string]interface{}{"before": "yes"}, snapshot.Attributes)
	require.Len(snapshot.Events, 1)
	assert.Equal("before", snapshot.Events[0].Name)
	assert.Equal(Status{Code: StatusOk}, snapshot.Status)
}

func testSpanStatusLastWriteWins(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		tracer, captured = captureTracer()
	)

	s, _ := tracer.Start(Root(), "test")
	s.SetStatus(StatusError, "first")
	s.SetStatus(StatusOk, "")
	s.End()

	require.Len(*captured, 1)
	assert.Equal(Status{Code: StatusOk}, (*captured)[0].Status)
}

func testSpanEndNeverPrecedesStart(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		start = time.Now()

		tracer, captured = captureTracer()
	)

	s, _ := tracer.Start(Root(), "test", WithStartTime(start))
	s.End(WithEndTime(start.Add(-time.Minute)))

	require.Len(*captured, 1)
	snapshot := (*captured)[0]

	assert.Equal(start, snapshot.StartTime)
	assert.Equal(start, snapshot.EndTime)
	assert.Zero(snapshot.Duration())
}

func testSpanExplicitTimes(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		start = time.Now()
		end   = start.Add(15 * time.Millisecond)

		tracer, captured = captureTracer()
	)

	s, _ := tracer.Start(Root(), "test", WithStartTime(start))
	s.End(WithEndTime(end))

	require.Len(*captured, 1)
	snapshot := (*captured)[0]

	assert.Equal(start, snapshot.StartTime)
	assert.Equal(end, snapshot.EndTime)
	assert.Equal(15*time.Millisecond, snapshot.Duration())
}

func testSpanSnapshotIsDetached(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		tracer, captured = captureTracer()
	)

	s, _ := tracer.Start(Root(), "test", WithAttributes(map[string]interface{}{"initial": 1}))
	s.SetAttribute("added", 2)

	eventAttributes := map[string]interface{}{"attempt": 1}
	s.AddEvent("tried", eventAttributes)
	s.End()

	require.Len(*captured, 1)
	snapshot := (*captured)[0]

	// the snapshot owns copies; it cannot share storage with a live span
	snapshot.Attributes["injected"] = true
	s.End()
	assert.Len(*captured, 1)
	assert.Equal("test", snapshot.Name)
	assert.Equal(s.SpanContext(), snapshot.SpanContext)

	// the caller keeps its event attribute map; mutating it after the fact
	// cannot reach into the delivered record
	eventAttributes["attempt"] = 99
	require.Len(snapshot.Events, 1)
	assert.Equal(map[string]interface{}{"attempt": 1}, snapshot.Events[0].Attributes)
}

func testSpanDump(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		tracer, captured = captureTracer()
	)

	parent, parentCtx := tracer.Start(Root(), "parent")
	child, _ := tracer.Start(parentCtx, "child",
		WithKind(KindClient),
		WithLinks(Link{SpanContext: SpanContext{TraceID: TraceID{7}, SpanID: SpanID{7}}}),
	)

	child.SetAttribute("retries", 3)
	child.AddEvent("sent", nil)
	child.SetStatus(StatusError, "remote failure")
	child.End()
	parent.End()

	require.Len(*captured, 2)
	dump := (*captured)[0].Dump()

	assert.Equal("child", dump["name"])
	assert.Equal(child.SpanContext().TraceID.String(), dump["traceID"])
	assert.Equal(child.SpanContext().SpanID.String(), dump["spanID"])
	assert.Equal(parent.SpanContext().SpanID.String(), dump["parent"])
	assert.Equal("client", dump["kind"])
	assert.Equal("error", dump["status"])
	assert.Equal("remote failure", dump["statusMessage"])
	assert.Equal(map[string]string{"retries": "3"}, dump["attributes"])
	assert.Equal([]string{"sent"}, dump["events"])
	assert.Equal([]string{TraceID{7}.String() + ":" + SpanID{7}.String()}, dump["links"])

	// root spans have no parent key
	_, hasParent := (*captured)[1].Dump()["parent"]
	assert.False(hasParent)
}

func TestSpan(t *testing.T) {
	t.Run("EndIsIdempotent", testSpanEndIsIdempotent)
	t.Run("WritesAfterEndAreDropped", testSpanWritesAfterEndAreDropped)
	t.Run("StatusLastWriteWins", testSpanStatusLastWriteWins)
	t.Run("EndNeverPrecedesStart", testSpanEndNeverPrecedesStart)
	t.Run("ExplicitTimes", testSpanExplicitTimes)
	t.Run("SnapshotIsDetached", testSpanSnapshotIsDetached)
	t.Run("Dump", testSpanDump)
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package tracing provides the core of a distributed tracing library:  immutable
Contexts carrying a current span identity and baggage, mutable Spans with a
fixed identity, and the Tracer that ties them together.

A Context is a value.  Copying it, deriving from it, and handing it to another
goroutine are all safe, and none of them can corrupt the original.  The flip
side is that a Context captured before a mutation does not observe that
mutation, so context handoff across goroutines is always explicit:  capture
the Context value before spawning, attach it inside the spawned goroutine (see
the scope package), and order mutations before the capture.

Completed spans are delivered to Processor implementations exactly once.  The
processor package provides ready-made processors and exporters.
*/
package tracing

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package processor supplies ready-made tracing.Processor implementations and
the Exporter boundary they deliver to.

Simple forwards each completed span synchronously.  Batch buffers spans on a
bounded channel and exports on a timer, on demand, or when a batch fills;
when the buffer is full it drops rather than block the ending goroutine.
Instrument decorates any processor with completion and error counters.

Exporters are the edge of this module.  Actual transport (OTLP, collectors,
storage) lives elsewhere; the exporters here log spans for development and
bridge to structured logging stacks.
*/
package processor

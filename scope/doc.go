// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package scope tracks the active tracing.Context for a single execution path.

A Scope is not a process-wide registry and is not goroutine-local magic:  it
is a plain value owned by exactly one goroutine and threaded explicitly, which
keeps concurrent execution paths isolated by construction.  A freshly spawned
goroutine has no Scope and therefore no context; inheriting the spawner's
context requires capturing Current() before the spawn and attaching the
captured value inside the new goroutine:

	ctx := s.Current()           // capture on the spawning path
	go func() {
		inner := scope.New()     // the spawned path owns its own slot
		token := inner.Attach(ctx)
		defer inner.Detach(token)
		// ... traced work ...
	}()

Because Contexts are immutable snapshots, the capture point matters:  any
baggage written on the spawning path after the capture is invisible to the
spawned goroutine.  Perform all context mutations before capturing.
*/
package scope

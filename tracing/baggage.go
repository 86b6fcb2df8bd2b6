package tracing

// Baggage is an immutable mapping of string keys to string values carried
// inside a Context and propagated across process boundaries.  Baggage is
// distinct from span attributes:  attributes stay local to a single span and
// are never propagated, while baggage follows the trace wherever its Context
// is handed.
//
// The zero value is an empty Baggage.  Mutator methods return derived copies
// and never modify their receiver.
type Baggage struct {
	entries map[string]string
}

// NewBaggage produces a Baggage from an initial set of entries.  The supplied
// map is copied, so callers are free to reuse it.
func NewBaggage(entries map[string]string) Baggage {
	if len(entries) == 0 {
		return Baggage{}
	}

	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}

	return Baggage{entries: copied}
}

// Get returns the value for the given key, if present.
func (b Baggage) Get(key string) (string, bool) {
	v, ok := b.entries[key]
	return v, ok
}

// Set returns a Baggage with the given entry upserted.  The receiver is unchanged.
func (b Baggage) Set(key, value string) Baggage {
	copied := make(map[string]string, len(b.entries)+1)
	for k, v := range b.entries {
		copied[k] = v
	}

	copied[key] = value
	return Baggage{entries: copied}
}

// Remove returns a Baggage without the given key.  If the key is not present,
// the receiver is returned as is.
func (b Baggage) Remove(key string) Baggage {
	if _, ok := b.entries[key]; !ok {
		return b
	}

	if len(b.entries) == 1 {
		return Baggage{}
	}

	copied := make(map[string]string, len(b.entries)-1)
	for k, v := range b.entries {
		if k != key {
			copied[k] = v
		}
	}

	return Baggage{entries: copied}
}

// Len returns the number of entries.
func (b Baggage) Len() int {
	return len(b.entries)
}

// Walk invokes the given function for each entry until it returns false.
// Iteration order is unspecified.
func (b Baggage) Walk(f func(key, value string) bool) {
	for k, v := range b.entries {
		if !f(k, v) {
			return
		}
	}
}

// Map returns the entries as a plain map.  The result is a copy; mutating it
// does not affect this Baggage.
func (b Baggage) Map() map[string]string {
	copied := make(map[string]string, len(b.entries))
	for k, v := range b.entries {
		copied[k] = v
	}

	return copied
}

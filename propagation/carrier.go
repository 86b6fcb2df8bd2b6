package propagation

import "net/http"

// Carrier is the flat string-to-string transport representation of a Context.
// It is the only externally visible form of a Context crossing a process
// boundary.
type Carrier interface {
	// Get returns the value for a key, or the empty string if absent.
	Get(key string) string

	// Set upserts a key.  Setting a key twice keeps the last value.
	Set(key, value string)
}

// MapCarrier adapts a plain map to the Carrier interface.
type MapCarrier map[string]string

func (mc MapCarrier) Get(key string) string {
	return mc[key]
}

func (mc MapCarrier) Set(key, value string) {
	mc[key] = value
}

// HeaderCarrier adapts an http.Header to the Carrier interface.  The carrier
// keys this package writes are fixed names that survive header
// canonicalization; user baggage keys travel inside the baggage value and are
// preserved byte-exactly.
type HeaderCarrier http.Header

func (hc HeaderCarrier) Get(key string) string {
	return http.Header(hc).Get(key)
}

func (hc HeaderCarrier) Set(key, value string) {
	http.Header(hc).Set(key, value)
}

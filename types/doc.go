// Package types contains small utility types shared by tracekit configuration
// structures.
package types

// Package codec provides pluggable (de)serialization of cache values.
package codec

// Codec encodes/decodes values V to []byte for storage. Implementations
// must never interpret the bytes they receive; framing and negative-entry
// handling are owned by the loader.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

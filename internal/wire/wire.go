// Package wire defines the storage envelope for cache entries.
//
// Every value written to the store is framed so that a negative entry
// ("confirmed absent") can never collide with serializer output: the codec
// payload always sits behind a header whose kind byte distinguishes real
// values from negative markers. String comparison against a reserved literal
// is never needed.
package wire

import (
	"bytes"
	"errors"
)

const (
	version byte = 1

	// KindValue frames a codec payload; KindNegative frames "confirmed absent".
	KindValue    byte = 1
	KindNegative byte = 2
)

var (
	ErrCorrupt = errors.New("keyload: corrupt entry")

	magic2 = [...]byte{'k', 'l'}

	// negative is the complete wire form of a negative entry: header only,
	// no payload. Comparable byte-for-byte, including server-side.
	negative = []byte{'k', 'l', version, KindNegative}
)

func hasMagic(b []byte) bool {
	return len(b) >= 2 && bytes.Equal(b[:2], magic2[:])
}

// EncodeValue frames a codec payload: magic(2) | ver(1) | kind(1=value) | payload.
func EncodeValue(payload []byte) []byte {
	out := make([]byte, 0, 4+len(payload))
	out = append(out, magic2[:]...)
	out = append(out, version, KindValue)
	return append(out, payload...)
}

// Negative returns the wire form of a negative entry. Callers must not
// mutate the result.
func Negative() []byte { return negative }

// Decode splits an entry into its kind and payload. Negative entries carry
// an empty payload; trailing bytes after a negative header are corruption.
func Decode(b []byte) (kind byte, payload []byte, err error) {
	if len(b) < 4 || !hasMagic(b) || b[2] != version {
		return 0, nil, ErrCorrupt
	}
	switch b[3] {
	case KindValue:
		return KindValue, b[4:], nil
	case KindNegative:
		if len(b) != 4 {
			return 0, nil, ErrCorrupt
		}
		return KindNegative, nil, nil
	default:
		return 0, nil, ErrCorrupt
	}
}

// IsNegative reports whether b is exactly the negative entry.
func IsNegative(b []byte) bool { return bytes.Equal(b, negative) }

// Package keyutil converts logical keys to their store-key string form.
package keyutil

import (
	"fmt"
	"strconv"
)

// String renders a key as a stable string. String- and integer-shaped keys
// map directly; fmt.Stringer is honored. Anything else falls back to %v and
// should instead use an explicit key function on the loader.
func String(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	case int:
		return strconv.FormatInt(int64(k), 10)
	case int8:
		return strconv.FormatInt(int64(k), 10)
	case int16:
		return strconv.FormatInt(int64(k), 10)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	case uint8:
		return strconv.FormatUint(uint64(k), 10)
	case uint16:
		return strconv.FormatUint(uint64(k), 10)
	case uint32:
		return strconv.FormatUint(uint64(k), 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case bool:
		return strconv.FormatBool(k)
	case []byte:
		return string(k)
	default:
		return fmt.Sprintf("%v", k)
	}
}

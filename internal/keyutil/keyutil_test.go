package keyutil

import (
	"net/netip"
	"testing"
)

func TestString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{uint64(1 << 40), "1099511627776"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{netip.MustParseAddr("10.0.0.1"), "10.0.0.1"}, // fmt.Stringer
		{struct{ A, B int }{1, 2}, "{1 2}"},           // %v fallback
	}
	for _, tc := range cases {
		if got := String(tc.in); got != tc.want {
			t.Errorf("String(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

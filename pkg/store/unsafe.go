package store

import (
	"unsafe"
)

// UnsafeStringToBytes converts strings to []byte without memcopy.
// The result must not be mutated.
func UnsafeStringToBytes(s string) []byte {
	if s == "" {
		return nil
	}
	/* #nosec */
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// UnsafeBytesToString converts []byte to string without a memcopy
func UnsafeBytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	/* #nosec */
	return unsafe.String(&b[0], len(b))
}

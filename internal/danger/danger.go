// Package danger contains unsafe helpers that trade Go's memory-safety
// guarantees for avoiding an allocation on a hot path. Every function here
// must preserve the invariant it trades away; callers must not.
package danger

import "unsafe"

// BytesToString converts b to a string without copying the underlying
// bytes. The caller must not mutate b after the call: doing so mutates the
// returned string, which violates string immutability.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts s to a []byte without copying the underlying
// bytes. The returned slice must not be mutated or appended to: the memory
// backing a Go string is immutable, and the runtime is within its rights to
// place multiple strings in the same backing array.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

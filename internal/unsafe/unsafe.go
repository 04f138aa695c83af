// Package unsafe contains the one unsafe-pointer-arithmetic helper the
// diagnostics path needs: recovering a byte offset from a subslice without
// re-scanning the document from the start.
package unsafe

import (
	"fmt"
	"unsafe"
)

// SubsliceOffset returns the offset of subslice within data.
//
// subslice must have been produced by slicing data (directly or through a
// chain of reslices); otherwise this panics. This is how the scanner's
// borrowed tokens relate to the input buffer, so the precondition always
// holds for values that came out of a Scanner.
func SubsliceOffset(data []byte, subslice []byte) int {
	dataAddr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	subAddr := uintptr(unsafe.Pointer(unsafe.SliceData(subslice)))

	if subAddr < dataAddr {
		panic(fmt.Errorf("subslice address (%d) is before data address (%d)", subAddr, dataAddr))
	}

	offset := int(subAddr - dataAddr)

	if offset > len(data) {
		panic(fmt.Errorf("slice offset (%d) is farther than data length (%d)", offset, len(data)))
	}

	if offset+len(subslice) > len(data) {
		panic(fmt.Errorf("slice ends (%d+%d) is farther than data length (%d)", offset, len(subslice), len(data)))
	}

	return offset
}

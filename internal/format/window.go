package format

import "encoding/binary"

// window is a read-only view over the prefix of a file. Every accessor
// checks bounds and reports ok=false instead of panicking when the requested
// field does not fit in the buffer.
type window []byte

func (w window) has(off, n int) bool {
	return off >= 0 && n >= 0 && off <= len(w)-n
}

func (w window) slice(off, n int) ([]byte, bool) {
	if !w.has(off, n) {
		return nil, false
	}
	return w[off : off+n], true
}

func (w window) u8(off int) (uint8, bool) {
	if !w.has(off, 1) {
		return 0, false
	}
	return w[off], true
}

func (w window) u16(order binary.ByteOrder, off int) (uint16, bool) {
	b, ok := w.slice(off, 2)
	if !ok {
		return 0, false
	}
	return order.Uint16(b), true
}

func (w window) u32(order binary.ByteOrder, off int) (uint32, bool) {
	b, ok := w.slice(off, 4)
	if !ok {
		return 0, false
	}
	return order.Uint32(b), true
}

func (w window) hasPrefix(off int, s string) bool {
	b, ok := w.slice(off, len(s))
	return ok && string(b) == s
}

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package table

// slots is the number of entries of the marker array, one per value of the
// 16 bit rolling hash computed over key prefixes.
const slots = 1 << 16

const (
	empty    = iota // no key prefix hashes here
	partial         // some key continues past this point
	complete        // a complete key may end here
)

// PrefixTable maps short byte keys (typically magic numbers) to values and
// answers the question "which stored keys are a prefix of this buffer"
// without comparing the buffer against every key.
//
// A rolling hash over the bytes seen so far indexes a marker array: walking a
// buffer stops as soon as the marker is empty, so the cost of a lookup is
// bounded by the length of the longest key rather than by the buffer size.
// Hash collisions only cost an extra map lookup, since matches are always
// confirmed against the exact key.
type PrefixTable[T any] struct {
	markers [slots]byte
	elems   map[string]T
}

func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func next(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert stores v under key, replacing any previous value.
func (t *PrefixTable[T]) Insert(k []byte, v T) {
	var h uint16
	for _, b := range k {
		h = next(h, b)
		t.markers[h] = max(t.markers[h], partial)
	}
	t.markers[h] = complete
	t.elems[string(k)] = v
}

func (t *PrefixTable[T]) Get(k []byte) (T, bool) {
	v, found := t.elems[string(k)]
	return v, found
}

// Walk calls onMatch, shortest first, for the value of every stored key that
// is a prefix of data. Returning true from onMatch ends the walk.
func (t *PrefixTable[T]) Walk(data []byte, onMatch func(T) bool) {
	var h uint16
	for i, b := range data {
		h = next(h, b)

		switch t.markers[h] {
		case empty:
			return
		case complete:
			if v, ok := t.elems[string(data[:i+1])]; ok && onMatch(v) {
				return
			}
		}
	}
}

func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}

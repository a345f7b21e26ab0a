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
package format

import (
	"encoding/binary"
	"iter"
)

const pngSignature = "\x89PNG"

var pngFileHeader = FileHeader{
	Format:      FormatPNG,
	Exts:        []string{"png"},
	Description: "Portable Network Graphics",
	Signatures: [][]byte{
		[]byte(pngSignature),
	},
	MinSize: 24,
	Parse:   parsePNG,
}

// Color types, as stored in the IHDR chunk.
const (
	ctGrayscale      = 0
	ctTrueColor      = 2
	ctPaletted       = 3
	ctGrayscaleAlpha = 4
	ctTrueColorAlpha = 6
)

var pngChannels = map[uint8]uint32{
	ctGrayscale:      1,
	ctTrueColor:      3,
	ctPaletted:       1,
	ctGrayscaleAlpha: 2,
	ctTrueColorAlpha: 4,
}

// Offsets of the IHDR fields, counted from the start of the file.
const (
	ihdrWidthOffset     = 16
	ihdrHeightOffset    = 20
	ihdrColorTypeOffset = 25
)

const (
	pngChunksOffset    = 8 // chunks start right after the 8 byte file signature
	pngChunkHeaderSize = 8 // length + type
	pngChunkCRCSize    = 4
	pngPhysSize        = 9
	pngUnitMeter       = 1
)

// pngChunk is the header of a chunk: [length][type][data...][crc].
type pngChunk struct {
	Offset int // offset of the length field
	Length uint32
	Type   string
}

func (c pngChunk) dataOffset() int {
	return c.Offset + pngChunkHeaderSize
}

// pngChunks walks the chunk list of w, starting right after the file
// signature. The walk ends when fewer than pngChunkHeaderSize bytes are left
// or when a chunk length points past the end of w.
func pngChunks(w window) iter.Seq[pngChunk] {
	return func(yield func(pngChunk) bool) {
		off := pngChunksOffset
		for w.has(off, pngChunkHeaderSize) {
			length, _ := w.u32(binary.BigEndian, off)
			typ, _ := w.slice(off+4, 4)

			if !yield(pngChunk{Offset: off, Length: length, Type: string(typ)}) {
				return
			}

			next := int64(off) + pngChunkHeaderSize + int64(length) + pngChunkCRCSize
			if next > int64(len(w)) {
				return
			}
			off = int(next)
		}
	}
}

// pngPhys is the payload of a pHYs chunk.
type pngPhys struct {
	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	Unit           uint8
}

func readPhys(w window, c pngChunk) (pngPhys, bool) {
	if c.Length < pngPhysSize {
		return pngPhys{}, false
	}

	off := c.dataOffset()
	x, okX := w.u32(binary.BigEndian, off)
	y, okY := w.u32(binary.BigEndian, off+4)
	unit, okUnit := w.u8(off + 8)
	if !okX || !okY || !okUnit {
		return pngPhys{}, false
	}
	return pngPhys{PixelsPerUnitX: x, PixelsPerUnitY: y, Unit: unit}, true
}

// density returns nil unless the resolution is expressed per meter; the
// "unknown" unit only carries an aspect ratio.
func (p pngPhys) density() *Density {
	if p.Unit != pngUnitMeter {
		return nil
	}
	return &Density{
		X:    perMeterToPerInch(float64(p.PixelsPerUnitX)),
		Y:    perMeterToPerInch(float64(p.PixelsPerUnitY)),
		Unit: UnitPPI,
	}
}

func parsePNG(w window) (*ImageMetadata, error) {
	width, okW := w.u32(binary.BigEndian, ihdrWidthOffset)
	height, okH := w.u32(binary.BigEndian, ihdrHeightOffset)
	if !okW || !okH {
		return nil, ErrTooShort
	}

	md := &ImageMetadata{
		Format:   FormatPNG,
		Width:    width,
		Height:   height,
		Channels: 3,
	}

	if ct, ok := w.u8(ihdrColorTypeOffset); ok {
		if n, found := pngChannels[ct]; found {
			md.Channels = n
		}
	}

	for chunk := range pngChunks(w) {
		if chunk.Type != "pHYs" {
			continue
		}
		if phys, ok := readPhys(w, chunk); ok {
			md.Density = phys.density()
		}
		break
	}
	return md, nil
}

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

var jpegFileHeader = FileHeader{
	Format:      FormatJPEG,
	Exts:        []string{"jpg", "jpeg"},
	Description: "JPEG File Interchange Format",
	Signatures: [][]byte{
		{0xFF, soiMarker},
	},
	Parse: parseJPEG,
}

const (
	sof0Marker  = 0xc0 // Start Of Frame (Baseline Sequential).
	dhtMarker   = 0xc4 // Define Huffman Table.
	jpgMarker   = 0xc8 // Reserved for JPEG extensions.
	dacMarker   = 0xcc // Define Arithmetic Coding conditioning.
	sof15Marker = 0xcf // Start Of Frame (Lossless, Differential, Arithmetic).
	soiMarker   = 0xd8 // Start Of Image.
	app0Marker  = 0xe0 // APPlication specific (JFIF).
	fillByte    = 0xff
)

// isSOF reports whether marker starts a frame header. The C4, C8 and CC codes
// share the SOF range but introduce other segments.
func isSOF(marker byte) bool {
	if marker < sof0Marker || marker > sof15Marker {
		return false
	}
	return marker != dhtMarker && marker != jpgMarker && marker != dacMarker
}

// jpegSegment is a marker found in the stream. Offset points at the 0xFF
// byte that introduces it; the big endian segment length, which includes
// its own two bytes, follows the marker byte.
type jpegSegment struct {
	Offset int
	Marker byte
}

// jpegSegments walks the marker stream of w, starting right after the SOI
// marker. Bytes between segments that are not 0xFF are skipped one at a
// time, as are 0xFF fill bytes. The walk ends when a segment length cannot
// be read or w is exhausted.
func jpegSegments(w window) iter.Seq[jpegSegment] {
	return func(yield func(jpegSegment) bool) {
		off := 2
		for off < len(w) {
			if w[off] != fillByte {
				off++
				continue
			}

			marker, ok := w.u8(off + 1)
			if !ok {
				return
			}
			if marker == fillByte {
				off++
				continue
			}

			if !yield(jpegSegment{Offset: off, Marker: marker}) {
				return
			}

			length, ok := w.u16(binary.BigEndian, off+2)
			if !ok {
				return
			}
			off += 2 + int(length)
		}
	}
}

// jpegFrame holds the fields of a SOFn segment we care about.
type jpegFrame struct {
	Height     uint16
	Width      uint16
	Components uint8
}

func readFrame(w window, seg jpegSegment) (jpegFrame, bool) {
	height, okH := w.u16(binary.BigEndian, seg.Offset+5)
	width, okW := w.u16(binary.BigEndian, seg.Offset+7)
	components, okC := w.u8(seg.Offset + 9)
	if !okH || !okW || !okC {
		return jpegFrame{}, false
	}
	return jpegFrame{Height: height, Width: width, Components: components}, true
}

// JFIF density units.
const (
	jfifUnitsNone = 0
	jfifUnitsDPI  = 1
	jfifUnitsDPCM = 2
)

const jfifMinLength = 14

// jfifHeader is the part of a leading APP0 "JFIF" segment carrying the
// image resolution.
type jfifHeader struct {
	Units    uint8
	XDensity uint16
	YDensity uint16
}

// readJFIF decodes the APP0 segment only when it immediately follows SOI.
func readJFIF(w window) (jfifHeader, bool) {
	if !w.hasPrefix(2, string([]byte{fillByte, app0Marker})) || !w.hasPrefix(6, "JFIF") {
		return jfifHeader{}, false
	}

	length, ok := w.u16(binary.BigEndian, 4)
	if !ok || length < jfifMinLength {
		return jfifHeader{}, false
	}

	units, okU := w.u8(13)
	x, okX := w.u16(binary.BigEndian, 14)
	y, okY := w.u16(binary.BigEndian, 16)
	if !okU || !okX || !okY {
		return jfifHeader{}, false
	}
	return jfifHeader{Units: units, XDensity: x, YDensity: y}, true
}

func (h jfifHeader) density() *Density {
	switch h.Units {
	case jfifUnitsDPI:
		return &Density{X: uint32(h.XDensity), Y: uint32(h.YDensity), Unit: UnitDPI}
	case jfifUnitsDPCM:
		return &Density{
			X:    perCmToPerInch(float64(h.XDensity)),
			Y:    perCmToPerInch(float64(h.YDensity)),
			Unit: UnitDPI,
		}
	}
	// jfifUnitsNone only defines an aspect ratio.
	return nil
}

func parseJPEG(w window) (*ImageMetadata, error) {
	var density *Density
	if hdr, ok := readJFIF(w); ok {
		density = hdr.density()
	}

	for seg := range jpegSegments(w) {
		if !isSOF(seg.Marker) {
			continue
		}

		frame, ok := readFrame(w, seg)
		if !ok {
			return nil, ErrTooShort
		}

		channels := uint32(frame.Components)
		if channels == 0 {
			channels = 3
		}
		return &ImageMetadata{
			Format:   FormatJPEG,
			Width:    uint32(frame.Width),
			Height:   uint32(frame.Height),
			Channels: channels,
			Density:  density,
		}, nil
	}
	return nil, ErrMissingFrame
}

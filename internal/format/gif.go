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

import "encoding/binary"

var gifFileHeader = FileHeader{
	Format:      FormatGIF,
	Exts:        []string{"gif"},
	Description: "Graphics Interchange Format",
	Signatures: [][]byte{
		[]byte("GIF87a"),
		[]byte("GIF89a"),
	},
	MinSize: 10,
	Parse:   parseGIF,
}

// gifScreenDescriptor is the Logical Screen Descriptor following the 6 byte
// version header.
type gifScreenDescriptor struct {
	Width  uint16
	Height uint16
}

func readScreenDescriptor(w window) (gifScreenDescriptor, bool) {
	width, okW := w.u16(binary.LittleEndian, 6)
	height, okH := w.u16(binary.LittleEndian, 8)
	if !okW || !okH {
		return gifScreenDescriptor{}, false
	}
	return gifScreenDescriptor{Width: width, Height: height}, true
}

// parseGIF reports a single channel: GIF pixels are palette indexes and the
// color table is not decoded.
func parseGIF(w window) (*ImageMetadata, error) {
	sd, ok := readScreenDescriptor(w)
	if !ok {
		return nil, ErrTooShort
	}
	return &ImageMetadata{
		Format:   FormatGIF,
		Width:    uint32(sd.Width),
		Height:   uint32(sd.Height),
		Channels: 1,
	}, nil
}

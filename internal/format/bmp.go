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
	"bytes"
	"encoding/binary"
	"fmt"
)

var bmpFileHeader = FileHeader{
	Format:      FormatBMP,
	Exts:        []string{"bmp"},
	Description: "Bitmap Image File Format",
	Signatures: [][]byte{
		[]byte("BM"),
	},
	MinSize: 30,
	Parse:   parseBMP,
}

// BMPHeader represents the BITMAPFILEHEADER structure of a BMP file.
type BMPHeader struct {
	Signature  [2]byte // BM
	FileSize   uint32  // Size of the BMP file in bytes
	Reserved1  uint16  // Must be 0
	Reserved2  uint16  // Must be 0
	DataOffset uint32  // Offset to the start of the bitmap data
}

// DIBHeader holds the leading fields of a BITMAPINFOHEADER, which are shared
// by every info header version from BITMAPINFOHEADER on. It ends at offset
// 30 of the file.
type DIBHeader struct {
	HeaderSize   uint32 // Size of the info header
	Width        int32  // Bitmap width in pixels
	Height       int32  // Negative for top-down bitmaps
	Planes       uint16 // Number of color planes (must be 1)
	BitsPerPixel uint16 // 1, 4, 8, 16, 24 or 32
}

// DIBResolution holds the BITMAPINFOHEADER fields following DIBHeader, up to
// the resolution. It ends at offset 46 of the file.
type DIBResolution struct {
	Compression     uint32 // Compression method
	ImageSize       uint32 // Size of the raw bitmap data (can be 0 for BI_RGB)
	XPixelsPerMeter int32
	YPixelsPerMeter int32
}

const bmpResolutionEnd = 46

func parseBMP(w window) (*ImageMetadata, error) {
	var (
		bmpHeader BMPHeader
		dibHeader DIBHeader
	)

	r := bytes.NewReader(w)
	if err := binary.Read(r, binary.LittleEndian, &bmpHeader); err != nil {
		return nil, fmt.Errorf("%w: incomplete BMP file header", ErrTooShort)
	}
	if err := binary.Read(r, binary.LittleEndian, &dibHeader); err != nil {
		return nil, fmt.Errorf("%w: incomplete DIB header", ErrTooShort)
	}

	md := &ImageMetadata{
		Format:   FormatBMP,
		Width:    abs32(dibHeader.Width),
		Height:   abs32(dibHeader.Height),
		Channels: max(1, uint32(dibHeader.BitsPerPixel/8)),
	}

	if len(w) < bmpResolutionEnd {
		return md, nil
	}

	var res DIBResolution
	if err := binary.Read(r, binary.LittleEndian, &res); err != nil {
		return md, nil
	}
	if res.XPixelsPerMeter > 0 && res.YPixelsPerMeter > 0 {
		md.Density = &Density{
			X:    perMeterToPerInch(float64(res.XPixelsPerMeter)),
			Y:    perMeterToPerInch(float64(res.YPixelsPerMeter)),
			Unit: UnitPPI,
		}
	}
	return md, nil
}

// abs32 returns |v|. Top-down bitmaps store a negative height.
func abs32(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}

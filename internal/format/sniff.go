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
	"errors"
	"fmt"
	"io"

	"github.com/ostafen/fileinfo/internal/fs"
)

const (
	// MaxPrefixSize is the number of bytes read from the start of a file.
	MaxPrefixSize = 64 * 1024
	// MinPrefixSize is the smallest prefix any format can be told from.
	MinPrefixSize = 12
)

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrTooShort      = errors.New("not enough data to read image header")
	ErrMissingFrame  = errors.New("jpeg: missing start of frame marker")
)

var defaultRegistry = BuildRegistry()

// Sniff returns the header metadata of the image at path, or nil if the file
// cannot be read, is too short or is not a supported image.
func Sniff(path string) *ImageMetadata {
	md, err := SniffFile(path)
	if err != nil {
		return nil
	}
	return md
}

// SniffFile is like Sniff but reports why no metadata could be returned.
// Read failures are wrapped; format failures match ErrUnknownFormat,
// ErrTooShort or ErrMissingFrame under errors.Is.
func SniffFile(path string) (*ImageMetadata, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, MaxPrefixSize)
	n, err := f.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return SniffBytes(buf[:n])
}

// SniffBytes parses the header of an image whose leading bytes are buf.
func SniffBytes(buf []byte) (*ImageMetadata, error) {
	if len(buf) < MinPrefixSize {
		return nil, ErrTooShort
	}

	hdr, ok := defaultRegistry.Match(buf)
	if !ok {
		return nil, ErrUnknownFormat
	}
	if len(buf) < hdr.MinSize {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrTooShort, hdr.Format, hdr.MinSize, len(buf))
	}
	return hdr.Parse(window(buf))
}

// IsFormatError reports whether err means the data is not a readable image,
// as opposed to a failure reading the file.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrUnknownFormat) ||
		errors.Is(err, ErrTooShort) ||
		errors.Is(err, ErrMissingFrame)
}

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

// Package csvscan extracts the structure of a CSV file: the number of rows,
// the header fields and the first data row.
//
// Fields are split on literal commas. Quoted fields containing commas or
// newlines are not recognized, so the output for such files is naive but
// stable.
package csvscan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ostafen/fileinfo/internal/fs"
)

const (
	// PrefixSize is the number of leading bytes the header and first row are
	// read from.
	PrefixSize = 4096

	countBufferSize = 64 * 1024
)

const (
	newline   = '\n'
	separator = ","
	bom       = "\ufeff"
)

// Metadata describes the structure of a CSV file. ColumnCount always equals
// len(Headers).
type Metadata struct {
	RowCount    uint64   `json:"rowCount"`
	ColumnCount uint32   `json:"columnCount"`
	Headers     []string `json:"headers"`
	FirstRow    []string `json:"firstRow"`
}

// Scan returns the structure of the CSV file at path, or nil if the file
// cannot be read.
func Scan(path string) *Metadata {
	md, err := ScanFile(path)
	if err != nil {
		return nil
	}
	return md
}

// ScanFile is like Scan but returns the read error.
func ScanFile(path string) (*Metadata, error) {
	f, err := fs.OpenSequential(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	size := info.Size()

	rows, err := CountLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to count lines of %q: %w", path, err)
	}
	// The hint only affects caching: a failure leaves the counted rows and
	// the prefix read below unchanged.
	_ = fs.DropCache(f)

	prefix := make([]byte, min(PrefixSize, max(size, 0)))
	n, err := f.ReadAt(prefix, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	if size > 0 {
		var last [1]byte
		if _, err := f.ReadAt(last[:], size-1); err != nil {
			return nil, fmt.Errorf("failed to read last byte of %q: %w", path, err)
		}
		if last[0] != newline {
			rows++
		}
	}

	md := Parse(prefix[:n])
	md.RowCount = rows
	return md, nil
}

// CountLines returns the number of newline bytes read from r until EOF.
func CountLines(r io.Reader) (uint64, error) {
	buf := make([]byte, countBufferSize)

	var count uint64
	for {
		n, err := r.Read(buf)
		count += uint64(bytes.Count(buf[:n], []byte{newline}))
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// Parse extracts the header and the first data row from the leading bytes of
// a CSV file. The returned RowCount is left to zero: it depends on the whole
// file and not just on its prefix.
//
// A header line that is blank after trimming spaces yields no headers and a
// ColumnCount of 0, rather than a single empty field. The same holds for a
// blank second line and FirstRow.
func Parse(prefix []byte) *Metadata {
	text := decodeUTF8(prefix)
	lines := splitLines(text)

	md := &Metadata{
		Headers:  []string{},
		FirstRow: []string{},
	}

	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		md.Headers = splitFields(lines[0])
	}
	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		md.FirstRow = splitFields(lines[1])
	}
	md.ColumnCount = uint32(len(md.Headers))
	return md
}

// decodeUTF8 turns prefix into text, dropping a leading byte order mark.
// Invalid sequences, such as a rune cut at the end of the prefix, become
// U+FFFD.
func decodeUTF8(prefix []byte) string {
	text := string(prefix)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return strings.TrimPrefix(text, bom)
}

// splitLines splits text on "\n" and "\r\n".
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func splitFields(line string) []string {
	fields := strings.Split(line, separator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

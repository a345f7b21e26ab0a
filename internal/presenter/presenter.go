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

// Package presenter routes files to the image sniffer or the CSV scanner by
// extension and renders the result as a one-line summary.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ostafen/fileinfo/internal/csvscan"
	"github.com/ostafen/fileinfo/internal/format"
	fmtutil "github.com/ostafen/fileinfo/pkg/util/format"
)

type Kind string

const (
	KindImage Kind = "image"
	KindCSV   Kind = "csv"
	KindOther Kind = "other"
)

var ErrNotRegular = errors.New("not a regular file")

var routes = buildRoutes()

func buildRoutes() map[string]Kind {
	m := map[string]Kind{".csv": KindCSV}
	for _, hdr := range format.Headers() {
		for _, ext := range hdr.Exts {
			m["."+ext] = KindImage
		}
	}
	return m
}

// Route tells which scanner handles path, based on its extension only.
func Route(path string) Kind {
	if k, ok := routes[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	return KindOther
}

// Description is what the presenter knows about a file. For images whose
// header is not recognized, Image is nil.
type Description struct {
	Path    string                `json:"path"`
	Kind    Kind                  `json:"kind"`
	Size    int64                 `json:"size"`
	ModTime time.Time             `json:"modTime"`
	Image   *format.ImageMetadata `json:"image,omitempty"`
	CSV     *csvscan.Metadata     `json:"csv,omitempty"`
}

// Recognized reports whether the scanner selected by Kind produced metadata.
func (d *Description) Recognized() bool {
	switch d.Kind {
	case KindImage:
		return d.Image != nil
	case KindCSV:
		return d.CSV != nil
	}
	return true
}

// Summary renders d the way a status bar would show it, e.g.
// "PNG 640×480 · 4ch · 72 ppi · 1.2KB".
func (d *Description) Summary() string {
	var parts []string

	switch {
	case d.Image != nil:
		img := d.Image
		parts = append(parts,
			fmt.Sprintf("%s %d×%d", img.Format, img.Width, img.Height),
			fmt.Sprintf("%dch", img.Channels),
		)
		if img.Density != nil {
			parts = append(parts, img.Density.String())
		}
	case d.CSV != nil:
		parts = append(parts, fmt.Sprintf("CSV %d %s × %d %s",
			d.CSV.RowCount, plural(d.CSV.RowCount, "row"),
			d.CSV.ColumnCount, plural(uint64(d.CSV.ColumnCount), "col"),
		))
	case d.Kind == KindImage:
		parts = append(parts, "unknown image format")
	}

	parts = append(parts, fmtutil.FormatBytes(d.Size))
	return strings.Join(parts, " · ")
}

func plural(n uint64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Describe stats path and runs the scanner its extension routes to. An image
// whose format is not recognized is not an error: the description is returned
// without image metadata.
func Describe(path string) (*Description, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	d := &Description{
		Path:    path,
		Kind:    Route(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	switch d.Kind {
	case KindImage:
		md, err := format.SniffFile(path)
		if err != nil && !format.IsFormatError(err) {
			return nil, err
		}
		d.Image = md
	case KindCSV:
		md, err := csvscan.ScanFile(path)
		if err != nil {
			return nil, err
		}
		d.CSV = md
	}
	return d, nil
}

// DescribeContext is like Describe, but stops waiting when ctx is done. The
// read itself cannot be interrupted and completes in the background.
func DescribeContext(ctx context.Context, path string) (*Description, error) {
	type result struct {
		d   *Description
		err error
	}

	ch := make(chan result, 1)
	go func() {
		d, err := Describe(path)
		ch <- result{d, err}
	}()

	select {
	case r := <-ch:
		return r.d, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result pairs a path with the outcome of describing it.
type Result struct {
	Path        string
	Description *Description
	Err         error
}

// DescribeAll describes paths using at most parallelism goroutines. Results
// are returned in the order of paths; a failure on one path does not affect
// the others.
func DescribeAll(ctx context.Context, paths []string, parallelism int, timeout time.Duration) []Result {
	return DescribeAllFunc(ctx, paths, parallelism, timeout, nil)
}

// DescribeAllFunc is like DescribeAll, but also passes each result to
// onResult as soon as it is available. onResult may be called concurrently.
func DescribeAllFunc(ctx context.Context, paths []string, parallelism int, timeout time.Duration, onResult func(Result)) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(max(parallelism, 1))

	for i, path := range paths {
		g.Go(func() error {
			fileCtx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				fileCtx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			d, err := DescribeContext(fileCtx, path)
			results[i] = Result{Path: path, Description: d, Err: err}
			if onResult != nil {
				onResult(results[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

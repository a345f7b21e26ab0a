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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ostafen/fileinfo/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// Progress renders a single line progress bar for a batch of files. It is
// safe for concurrent use.
type Progress struct {
	mu sync.Mutex

	out        io.Writer
	total      int
	done       int
	failed     int
	bytesRead  int64
	start      time.Time
	lastRender time.Time
	refresh    time.Duration
}

func New(w io.Writer, totalFiles int) *Progress {
	return &Progress{
		out:     w,
		total:   totalFiles,
		start:   time.Now(),
		refresh: MinRefreshRate,
	}
}

// Add records a completed file of the given size. Output is throttled to one
// line every MinRefreshRate.
func (p *Progress) Add(size int64, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.bytesRead += size
	if failed {
		p.failed++
	}
	p.render(false)
}

func (p *Progress) render(force bool) {
	now := time.Now()
	if !force && now.Sub(p.lastRender) < p.refresh {
		return
	}
	p.lastRender = now

	ratio := 1.0
	if p.total > 0 {
		ratio = float64(p.done) / float64(p.total)
	}

	filled := int(float64(barLength) * ratio)
	var bar string
	if filled >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filled) + ">" + strings.Repeat(" ", barLength-filled-1)
	}

	var rate float64
	if elapsed := now.Sub(p.start).Seconds(); elapsed > 0 {
		rate = float64(p.done) / elapsed
	}

	// \r rewinds to the start of the line; trailing spaces clear leftovers of
	// a previous, longer line.
	fmt.Fprintf(p.out, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d files) | %s read | Failed: %d | @ %.1f files/s    ",
		bar,
		ratio*100,
		p.done,
		p.total,
		format.FormatBytes(p.bytesRead),
		p.failed,
		rate,
	)
}

// Finish prints the final state of the bar and ends the line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.render(true)
	fmt.Fprintln(p.out)
}

//go:build !windows
// +build !windows

package fs

import "os"

// Open opens path for random access reads.
func Open(path string) (File, error) {
	return os.Open(path)
}

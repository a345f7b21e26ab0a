package fs

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenSequential opens path for a single front-to-back pass and tells the
// kernel to read ahead aggressively.
func OpenSequential(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// The advice is only a hint: a failure here never prevents reading.
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	return f, nil
}

// DropCache releases the page cache pages of a file read with OpenSequential,
// so that a full scan of a large file does not evict hotter data.
func DropCache(f File) error {
	osFile, ok := f.(*os.File)
	if !ok {
		return nil
	}
	if err := unix.Fadvise(int(osFile.Fd()), 0, 0, unix.FADV_DONTNEED); err != nil {
		return fmt.Errorf("fadvise(DONTNEED) failed: %w", err)
	}
	return nil
}

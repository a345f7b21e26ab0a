//go:build !linux && !windows
// +build !linux,!windows

package fs

// OpenSequential opens path for a single front-to-back pass.
func OpenSequential(path string) (File, error) {
	return Open(path)
}

// DropCache is a no-op on platforms without posix_fadvise.
func DropCache(f File) error {
	return nil
}

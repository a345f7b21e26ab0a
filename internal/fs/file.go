package fs

import (
	"io"
	"os"
)

// File is the read-only handle the sniffers work on. Callers own the handle
// and must close it on every exit path.
type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

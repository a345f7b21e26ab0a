package format

// FileHeader describes a supported image format: how to recognize it and how
// to read its header.
type FileHeader struct {
	Format      Format
	Exts        []string // File extensions, without the leading dot
	Description string
	Signatures  [][]byte

	// MinSize is the number of bytes Parse needs to read the mandatory fields.
	MinSize int
	Parse   func(w window) (*ImageMetadata, error)
}

// DefaultHeaders lists the supported formats in detection order.
var DefaultHeaders = []FileHeader{
	pngFileHeader,
	jpegFileHeader,
	bmpFileHeader,
	gifFileHeader,
}

func BuildRegistry() *FileRegistry {
	r := NewFileRegistry()
	for _, hdr := range DefaultHeaders {
		r.Add(hdr)
	}
	return r
}

// Headers returns a copy of the supported formats, in detection order.
func Headers() []FileHeader {
	return append([]FileHeader(nil), DefaultHeaders...)
}

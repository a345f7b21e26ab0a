package format_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/fileinfo/internal/format"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func pngChunk(typ string, data []byte) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	b = append(b, typ...)
	b = append(b, data...)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return binary.BigEndian.AppendUint32(b, crc.Sum32())
}

func physChunk(x, y uint32, unit byte) []byte {
	data := binary.BigEndian.AppendUint32(nil, x)
	data = binary.BigEndian.AppendUint32(data, y)
	return pngChunk("pHYs", append(data, unit))
}

// buildPNG returns a PNG made of a signature, an IHDR chunk, the extra chunks
// and a minimal IDAT/IEND tail.
func buildPNG(width, height uint32, colorType byte, extra ...[]byte) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = colorType

	b := []byte("\x89PNG\r\n\x1a\n")
	b = append(b, pngChunk("IHDR", ihdr)...)
	for _, c := range extra {
		b = append(b, c...)
	}
	b = append(b, pngChunk("IDAT", []byte{0x78, 0x9c, 0x03, 0x00})...)
	return append(b, pngChunk("IEND", nil)...)
}

func jpegSegment(marker byte, payload []byte) []byte {
	b := []byte{0xFF, marker}
	b = binary.BigEndian.AppendUint16(b, uint16(len(payload)+2))
	return append(b, payload...)
}

func jfifSegment(units byte, x, y uint16) []byte {
	payload := []byte("JFIF\x00")
	payload = append(payload, 1, 2, units)
	payload = binary.BigEndian.AppendUint16(payload, x)
	payload = binary.BigEndian.AppendUint16(payload, y)
	payload = append(payload, 0, 0) // no thumbnail
	return jpegSegment(0xE0, payload)
}

func sofSegment(marker byte, height, width uint16, components byte) []byte {
	payload := []byte{8}
	payload = binary.BigEndian.AppendUint16(payload, height)
	payload = binary.BigEndian.AppendUint16(payload, width)
	payload = append(payload, components)
	for i := byte(0); i < components; i++ {
		payload = append(payload, i+1, 0x11, 0)
	}
	return jpegSegment(marker, payload)
}

func buildJPEG(segments ...[]byte) []byte {
	b := []byte{0xFF, 0xD8}
	for _, s := range segments {
		b = append(b, s...)
	}
	return append(b, 0xFF, 0xD9)
}

func buildBMP(t *testing.T, width, height int32, bpp uint16, xppm, yppm int32) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, format.BMPHeader{
		Signature:  [2]byte{'B', 'M'},
		FileSize:   54,
		DataOffset: 54,
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, format.DIBHeader{
		HeaderSize:   40,
		Width:        width,
		Height:       height,
		Planes:       1,
		BitsPerPixel: bpp,
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, format.DIBResolution{
		XPixelsPerMeter: xppm,
		YPixelsPerMeter: yppm,
	}))
	// ColorsUsed, ColorsImportant
	buf.Write(make([]byte, 8))
	return buf.Bytes()
}

func buildGIF(version string, width, height uint16) []byte {
	b := []byte(version)
	b = binary.LittleEndian.AppendUint16(b, width)
	b = binary.LittleEndian.AppendUint16(b, height)
	b = append(b, 0x00, 0x00, 0x00) // fields, background, aspect ratio
	return append(b, 0x3B)
}

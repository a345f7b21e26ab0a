package csvscan_test

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ostafen/fileinfo/internal/csvscan"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScan(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    csvscan.Metadata
	}{
		{
			name:    "no trailing newline",
			content: "a,b,c\n1,2,3\n4,5,6",
			want: csvscan.Metadata{
				RowCount:    3,
				ColumnCount: 3,
				Headers:     []string{"a", "b", "c"},
				FirstRow:    []string{"1", "2", "3"},
			},
		},
		{
			name:    "trailing newline",
			content: "a,b\n1,2\n",
			want: csvscan.Metadata{
				RowCount:    2,
				ColumnCount: 2,
				Headers:     []string{"a", "b"},
				FirstRow:    []string{"1", "2"},
			},
		},
		{
			name:    "empty file",
			content: "",
			want: csvscan.Metadata{
				Headers:  []string{},
				FirstRow: []string{},
			},
		},
		{
			name:    "header only",
			content: "id,name",
			want: csvscan.Metadata{
				RowCount:    1,
				ColumnCount: 2,
				Headers:     []string{"id", "name"},
				FirstRow:    []string{},
			},
		},
		{
			name:    "CRLF and padding",
			content: " id , name \r\n 7 ,  bob\r\n",
			want: csvscan.Metadata{
				RowCount:    2,
				ColumnCount: 2,
				Headers:     []string{"id", "name"},
				FirstRow:    []string{"7", "bob"},
			},
		},
		{
			name:    "byte order mark",
			content: "\ufeffx,y\n1,2\n",
			want: csvscan.Metadata{
				RowCount:    2,
				ColumnCount: 2,
				Headers:     []string{"x", "y"},
				FirstRow:    []string{"1", "2"},
			},
		},
		{
			name:    "blank first row",
			content: "a,b\n   \n1,2\n",
			want: csvscan.Metadata{
				RowCount:    3,
				ColumnCount: 2,
				Headers:     []string{"a", "b"},
				FirstRow:    []string{},
			},
		},
		{
			name:    "blank header",
			content: "\n1,2\n",
			want: csvscan.Metadata{
				RowCount: 2,
				Headers:  []string{},
				FirstRow: []string{"1", "2"},
			},
		},
		{
			name:    "quoted comma is split",
			content: "name,city\n\"Doe, John\",Rome\n",
			want: csvscan.Metadata{
				RowCount:    2,
				ColumnCount: 2,
				Headers:     []string{"name", "city"},
				FirstRow:    []string{"\"Doe", "John\"", "Rome"},
			},
		},
		{
			name:    "single newline",
			content: "\n",
			want: csvscan.Metadata{
				RowCount: 1,
				Headers:  []string{},
				FirstRow: []string{},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md := csvscan.Scan(writeCSV(t, tc.content))
			require.NotNil(t, md)
			require.Equal(t, tc.want, *md)
			require.Equal(t, int(md.ColumnCount), len(md.Headers))
		})
	}
}

func TestScanCountsBeyondPrefix(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("n,square\n")
	for i := range 10000 {
		sb.WriteString(strings.Repeat("9", i%7+1))
		sb.WriteString(",1\n")
	}
	require.Greater(t, sb.Len(), csvscan.PrefixSize)

	md := csvscan.Scan(writeCSV(t, sb.String()))
	require.NotNil(t, md)
	require.Equal(t, uint64(10001), md.RowCount)
	require.Equal(t, []string{"n", "square"}, md.Headers)
	require.Equal(t, []string{"9", "1"}, md.FirstRow)
}

func TestScanLongHeaderIsCut(t *testing.T) {
	header := strings.Repeat("col,", 2000) + "last\n"
	md := csvscan.Scan(writeCSV(t, header+"1\n"))
	require.NotNil(t, md)

	// only the fields within the first PrefixSize bytes are seen
	require.Equal(t, uint32(csvscan.PrefixSize/4+1), md.ColumnCount)
	require.Empty(t, md.FirstRow)
	require.Equal(t, uint64(2), md.RowCount)
}

func TestScanMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	require.Nil(t, csvscan.Scan(path))

	_, err := csvscan.ScanFile(path)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestScanIsDeterministic(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2,3\n4,5,6")
	require.Equal(t, csvscan.Scan(path), csvscan.Scan(path))
}

func TestParse(t *testing.T) {
	t.Run("invalid utf-8", func(t *testing.T) {
		md := csvscan.Parse([]byte("a\xff,b\n1,2"))
		require.Equal(t, []string{"a\uFFFD", "b"}, md.Headers)
		require.Zero(t, md.RowCount)
	})

	t.Run("rune cut at the end", func(t *testing.T) {
		md := csvscan.Parse([]byte("é,\xc3"))
		require.Equal(t, []string{"é", "\uFFFD"}, md.Headers)
	})

	t.Run("whitespace header", func(t *testing.T) {
		md := csvscan.Parse([]byte("  \n1,2"))
		require.Empty(t, md.Headers)
		require.Zero(t, md.ColumnCount)
		require.Equal(t, []string{"1", "2"}, md.FirstRow)

		md = csvscan.Parse([]byte("\n"))
		require.Empty(t, md.Headers)
		require.Empty(t, md.FirstRow)
		require.Zero(t, md.ColumnCount)
	})
}

type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestCountLines(t *testing.T) {
	n, err := csvscan.CountLines(strings.NewReader("a\nb\n\nc"))
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)

	n, err = csvscan.CountLines(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = csvscan.CountLines(&errReader{data: []byte("a\nb\n"), err: io.EOF})
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)

	failure := errors.New("device error")
	_, err = csvscan.CountLines(&errReader{data: []byte("a\n"), err: failure})
	require.ErrorIs(t, err, failure)
}

package presenter_test

import (
	"context"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/ostafen/fileinfo/internal/csvscan"
	"github.com/ostafen/fileinfo/internal/format"
	"github.com/ostafen/fileinfo/internal/presenter"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRoute(t *testing.T) {
	cases := map[string]presenter.Kind{
		"a.png":          presenter.KindImage,
		"A.PNG":          presenter.KindImage,
		"dir/photo.jpeg": presenter.KindImage,
		"photo.JPG":      presenter.KindImage,
		"icon.bmp":       presenter.KindImage,
		"anim.gif":       presenter.KindImage,
		"table.csv":      presenter.KindCSV,
		"TABLE.Csv":      presenter.KindCSV,
		"notes.txt":      presenter.KindOther,
		"archive.tar.gz": presenter.KindOther,
		"no-extension":   presenter.KindOther,
		"csv":            presenter.KindOther,
		"dir.png/readme": presenter.KindOther,
		"image.png.bak":  presenter.KindOther,
	}
	for path, kind := range cases {
		require.Equal(t, kind, presenter.Route(path), path)
	}
}

func TestSummary(t *testing.T) {
	cases := []struct {
		desc presenter.Description
		want string
	}{
		{
			desc: presenter.Description{
				Kind: presenter.KindImage,
				Size: 1536,
				Image: &format.ImageMetadata{
					Format:   format.FormatPNG,
					Width:    640,
					Height:   480,
					Channels: 4,
					Density:  &format.Density{X: 72, Y: 72, Unit: format.UnitPPI},
				},
			},
			want: "PNG 640×480 · 4ch · 72 ppi · 1.50KB",
		},
		{
			desc: presenter.Description{
				Kind: presenter.KindImage,
				Size: 2048,
				Image: &format.ImageMetadata{
					Format:   format.FormatJPEG,
					Width:    10,
					Height:   20,
					Channels: 3,
				},
			},
			want: "JPEG 10×20 · 3ch · 2KB",
		},
		{
			desc: presenter.Description{
				Kind: presenter.KindCSV,
				Size: 20,
				CSV:  &csvscan.Metadata{RowCount: 3, ColumnCount: 3},
			},
			want: "CSV 3 rows × 3 cols · 20B",
		},
		{
			desc: presenter.Description{
				Kind: presenter.KindCSV,
				Size: 2,
				CSV:  &csvscan.Metadata{RowCount: 1, ColumnCount: 1},
			},
			want: "CSV 1 row × 1 col · 2B",
		},
		{
			desc: presenter.Description{Kind: presenter.KindImage, Size: 20},
			want: "unknown image format · 20B",
		},
		{
			desc: presenter.Description{Kind: presenter.KindOther, Size: 0},
			want: "0B",
		},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.desc.Summary())
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "red.png")
	require.NoError(t, imaging.Save(imaging.New(8, 4, color.NRGBA{R: 255, A: 255}), pngPath))

	t.Run("image", func(t *testing.T) {
		d, err := presenter.Describe(pngPath)
		require.NoError(t, err)
		require.Equal(t, presenter.KindImage, d.Kind)
		require.True(t, d.Recognized())
		require.Nil(t, d.CSV)
		require.Equal(t, &format.ImageMetadata{
			Format:   format.FormatPNG,
			Width:    8,
			Height:   4,
			Channels: 3,
		}, d.Image)

		info, err := os.Stat(pngPath)
		require.NoError(t, err)
		require.Equal(t, info.Size(), d.Size)
	})

	t.Run("csv", func(t *testing.T) {
		path := writeFile(t, dir, "t.csv", []byte("a,b,c\n1,2,3\n4,5,6"))

		d, err := presenter.Describe(path)
		require.NoError(t, err)
		require.Equal(t, presenter.KindCSV, d.Kind)
		require.True(t, d.Recognized())
		require.Equal(t, "CSV 3 rows × 3 cols · 17B", d.Summary())
	})

	t.Run("unrecognized image", func(t *testing.T) {
		path := writeFile(t, dir, "fake.png", []byte("definitely not a png"))

		d, err := presenter.Describe(path)
		require.NoError(t, err)
		require.Nil(t, d.Image)
		require.False(t, d.Recognized())
		require.Equal(t, "unknown image format · 20B", d.Summary())
	})

	t.Run("other", func(t *testing.T) {
		path := writeFile(t, dir, "notes.txt", []byte("hello"))

		d, err := presenter.Describe(path)
		require.NoError(t, err)
		require.Equal(t, presenter.KindOther, d.Kind)
		require.True(t, d.Recognized())
		require.Nil(t, d.Image)
		require.Nil(t, d.CSV)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := presenter.Describe(filepath.Join(dir, "missing.png"))
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		sub := filepath.Join(dir, "sub.csv")
		require.NoError(t, os.Mkdir(sub, 0755))

		_, err := presenter.Describe(sub)
		require.ErrorIs(t, err, presenter.ErrNotRegular)
	})
}

func TestDescribeContextCanceled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.csv", []byte("a\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either outcome is valid, depending on which select case wins.
	d, err := presenter.DescribeContext(ctx, path)
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
		require.Nil(t, d)
	} else {
		require.Equal(t, presenter.KindCSV, d.Kind)
	}
}

func TestDescribeAll(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		writeFile(t, dir, "a.csv", []byte("x,y\n1,2\n")),
		filepath.Join(dir, "missing.gif"),
		writeFile(t, dir, "b.gif", []byte("GIF89a\x0a\x00\x14\x00\x00\x00\x00;")),
		writeFile(t, dir, "c.txt", nil),
	}

	results := presenter.DescribeAll(context.Background(), paths, 2, time.Minute)
	require.Len(t, results, len(paths))

	for i, res := range results {
		require.Equal(t, paths[i], res.Path)
	}

	require.NoError(t, results[0].Err)
	require.Equal(t, uint64(2), results[0].Description.CSV.RowCount)

	require.ErrorIs(t, results[1].Err, fs.ErrNotExist)
	require.Nil(t, results[1].Description)

	require.NoError(t, results[2].Err)
	require.Equal(t, "GIF 10×20 · 1ch · 14B", results[2].Description.Summary())

	require.NoError(t, results[3].Err)
	require.Equal(t, presenter.KindOther, results[3].Description.Kind)
}

func TestDescribeAllEmpty(t *testing.T) {
	require.Empty(t, presenter.DescribeAll(context.Background(), nil, 0, 0))
}

func TestDescribeAllFunc(t *testing.T) {
	dir := t.TempDir()

	paths := []string{
		writeFile(t, dir, "a.csv", []byte("x\n")),
		writeFile(t, dir, "b.csv", []byte("y\n")),
		filepath.Join(dir, "c.csv"),
	}

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	results := presenter.DescribeAllFunc(context.Background(), paths, 3, 0, func(res presenter.Result) {
		mu.Lock()
		defer mu.Unlock()
		seen[res.Path] = res.Err == nil
	})

	require.Len(t, results, 3)
	require.Equal(t, map[string]bool{paths[0]: true, paths[1]: true, paths[2]: false}, seen)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/snap2pdf/internal/inspect"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// memSource serves base64 payloads from a map and records read order.
type memSource struct {
	files map[string][]byte
	reads []string
}

func (m *memSource) ReadBase64(uri string) (string, error) {
	m.reads = append(m.reads, uri)
	data, ok := m.files[uri]
	if !ok {
		return "", errors.New("no such file: " + uri)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// jpegBytes encodes a solid w x h JPEG.
func jpegBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

var fixedNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func newTestAssembler(t *testing.T, src Source, page types.PageConfig) *Assembler {
	t.Helper()
	a, err := New(src, Options{Page: page, Now: fixedNow})
	require.NoError(t, err)
	return a
}

func TestAssemble_ThreeImages(t *testing.T) {
	src := &memSource{files: map[string][]byte{
		"a.jpg": jpegBytes(t, 40, 30, color.RGBA{255, 0, 0, 255}),
		"b.jpg": jpegBytes(t, 20, 60, color.RGBA{0, 255, 0, 255}),
		"c.jpg": jpegBytes(t, 50, 50, color.RGBA{0, 0, 255, 255}),
	}}
	entries := []types.ImageEntry{
		{URI: "a.jpg", Color: "#FF0000"},
		{URI: "b.jpg", Color: "#00FF00"},
		{URI: "c.jpg", Color: "#0000FF"},
	}

	data, err := newTestAssembler(t, src, types.PageConfig{}).Assemble(context.Background(), entries)
	require.NoError(t, err)

	report, err := inspect.Inspect(data)
	require.NoError(t, err)
	require.Equal(t, 3, report.PageCount)

	wantDims := [][2]int64{{40, 30}, {20, 60}, {50, 50}}
	for i, p := range report.Pages {
		assert.InDelta(t, 595, p.Width, 0.01, "page %d width", i+1)
		assert.InDelta(t, 842, p.Height, 0.01, "page %d height", i+1)
		require.Len(t, p.Images, 1, "page %d images", i+1)

		img := p.Images[0]
		assert.Equal(t, "DCTDecode", img.Filter)
		assert.Equal(t, wantDims[i][0], img.Width, "page %d image width", i+1)
		assert.Equal(t, wantDims[i][1], img.Height, "page %d image height", i+1)
		assert.InDelta(t, 20, img.X, 0.01)
		assert.InDelta(t, 20, img.Y, 0.01)
		assert.InDelta(t, 555, img.W, 0.01)
		assert.InDelta(t, 802, img.H, 0.01)
	}
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, src.reads, "images read in collection order")
}

func TestAssemble_OrderPreserved(t *testing.T) {
	src := &memSource{files: map[string][]byte{
		"wide.jpg": jpegBytes(t, 64, 16, color.White),
		"tall.jpg": jpegBytes(t, 16, 64, color.Black),
	}}
	entries := []types.ImageEntry{
		{URI: "tall.jpg"}, {URI: "wide.jpg"}, {URI: "tall.jpg"}, {URI: "tall.jpg"}, {URI: "wide.jpg"},
	}

	data, err := newTestAssembler(t, src, types.PageConfig{}).Assemble(context.Background(), entries)
	require.NoError(t, err)

	pages, err := inspect.Pages(data)
	require.NoError(t, err)
	require.Len(t, pages, len(entries))
	for i, e := range entries {
		require.Len(t, pages[i].Images, 1)
		wantWide := e.URI == "wide.jpg"
		gotWide := pages[i].Images[0].Width > pages[i].Images[0].Height
		assert.Equal(t, wantWide, gotWide, "page %d shows %s", i+1, e.URI)
	}
}

func TestAssemble_Idempotent(t *testing.T) {
	src := &memSource{files: map[string][]byte{
		"a.jpg": jpegBytes(t, 30, 10, color.White),
		"b.jpg": jpegBytes(t, 10, 30, color.Black),
	}}
	entries := []types.ImageEntry{{URI: "a.jpg"}, {URI: "b.jpg"}}
	a := newTestAssembler(t, src, types.PageConfig{})

	first, err := a.Assemble(context.Background(), entries)
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), entries)
	require.NoError(t, err)

	p1, err := inspect.Pages(first)
	require.NoError(t, err)
	p2, err := inspect.Pages(second)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, first, second, "fixed clock gives byte-identical output")
}

func TestAssemble_Empty(t *testing.T) {
	a := newTestAssembler(t, &memSource{}, types.PageConfig{})
	_, err := a.Assemble(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestAssemble_Failures(t *testing.T) {
	good := jpegBytes(t, 8, 8, color.White)
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	tests := []struct {
		name     string
		files    map[string][]byte
		wantPage int
	}{
		{
			name:     "unreadable middle image",
			files:    map[string][]byte{"1.jpg": good, "3.jpg": good},
			wantPage: 2,
		},
		{
			name:     "corrupt jpeg",
			files:    map[string][]byte{"1.jpg": good, "2.jpg": []byte("garbage"), "3.jpg": good},
			wantPage: 2,
		},
		{
			name:     "png payload",
			files:    map[string][]byte{"1.jpg": pngBuf.Bytes(), "2.jpg": good, "3.jpg": good},
			wantPage: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &memSource{files: tt.files}
			entries := []types.ImageEntry{{URI: "1.jpg"}, {URI: "2.jpg"}, {URI: "3.jpg"}}

			data, err := newTestAssembler(t, src, types.PageConfig{}).Assemble(context.Background(), entries)
			require.Error(t, err)
			assert.Nil(t, data, "no partial document")

			var pe *PageError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.wantPage, pe.Page)
			assert.Len(t, src.reads, tt.wantPage, "assembly stops at the failing page")
		})
	}
}

func TestAssemble_Cancelled(t *testing.T) {
	src := &memSource{files: map[string][]byte{"a.jpg": jpegBytes(t, 4, 4, color.White)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAssembler(t, src, types.PageConfig{}).Assemble(ctx, []types.ImageEntry{{URI: "a.jpg"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.reads)
}

func TestAssemble_FitLayout(t *testing.T) {
	src := &memSource{files: map[string][]byte{"wide.jpg": jpegBytes(t, 200, 100, color.White)}}
	a := newTestAssembler(t, src, types.PageConfig{Layout: types.LayoutFit})

	data, err := a.Assemble(context.Background(), []types.ImageEntry{{URI: "wide.jpg"}})
	require.NoError(t, err)

	pages, err := inspect.Pages(data)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	require.Len(t, pages[0].Images, 1)

	img := pages[0].Images[0]
	assert.InDelta(t, 555, img.W, 0.01)
	assert.InDelta(t, 277.5, img.H, 0.01)
	assert.InDelta(t, 20, img.X, 0.01)
	assert.InDelta(t, 20+(802-277.5)/2, img.Y, 0.01)
}

func TestNew_InvalidGeometry(t *testing.T) {
	_, err := New(&memSource{}, Options{Page: types.PageConfig{Layout: "zoom"}})
	assert.Error(t, err)

	margin := 60.0
	_, err = New(&memSource{}, Options{Page: types.PageConfig{Width: 100, Height: 100, Margin: &margin}})
	assert.Error(t, err)

	margin = -1
	_, err = NewGeometry(types.PageConfig{Margin: &margin})
	assert.Error(t, err)
}

func TestNewGeometry_Margin(t *testing.T) {
	g, err := NewGeometry(types.PageConfig{})
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 20, Y: 20, W: 555, H: 802}, g.Box())

	zero := 0.0
	g, err = NewGeometry(types.PageConfig{Width: 595, Height: 842, Margin: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.Margin)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 595, H: 842}, g.Box())
}

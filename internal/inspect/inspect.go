// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect verifies assembled documents: structural validation and
// page count through pdfcpu, page geometry and drawn images through a
// page-level reader.
package inspect

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a configuration directory on first use.
	model.ConfigPath = "disable"
}

// Image is one image drawn on a page.
type Image struct {
	// Name is the XObject resource name.
	Name string `json:"name"`
	// Width and Height are the image's pixel dimensions.
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
	// Filter is the stream filter, "DCTDecode" for JPEG.
	Filter string `json:"filter"`
	// Length is the encoded stream length in bytes.
	Length int64 `json:"length"`
	// X, Y, W, H is the placement in PDF user space.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Page describes one page.
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Images []Image `json:"images"`
}

// Report is the result of inspecting a document.
type Report struct {
	PageCount int    `json:"page_count"`
	Pages     []Page `json:"pages,omitempty"`
}

func config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Validate checks the document structure and returns its page count.
func Validate(rs io.ReadSeeker) (int, error) {
	if err := pdfapi.Validate(rs, config()); err != nil {
		return 0, fmt.Errorf("validating document: %w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := pdfapi.PageCount(rs, config())
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}

// Inspect validates data and describes every page.
func Inspect(data []byte) (*Report, error) {
	n, err := Validate(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	pages, err := Pages(data)
	if err != nil {
		return nil, err
	}
	if len(pages) != n {
		return nil, fmt.Errorf("page tree reports %d pages, walked %d", n, len(pages))
	}
	return &Report{PageCount: n, Pages: pages}, nil
}

// placement matches "q w 0 0 h x y cm /Name Do", the operator sequence used
// to draw a scaled image.
var placement = regexp.MustCompile(`([-\d.]+)\s+0\s+0\s+([-\d.]+)\s+([-\d.]+)\s+([-\d.]+)\s+cm\s+/(\S+)\s+Do`)

// Pages walks the page tree and reports geometry and drawn images.
func Pages(data []byte) (pages []Page, err error) {
	// The reader panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pages: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			return nil, fmt.Errorf("page %d missing", i)
		}
		pg := Page{Number: i}
		box := inherited(p.V, "MediaBox")
		if box.Len() == 4 {
			pg.Width = box.Index(2).Float64() - box.Index(0).Float64()
			pg.Height = box.Index(3).Float64() - box.Index(1).Float64()
		}

		content, err := readContent(p.V.Key("Contents"))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		xobjects := p.Resources().Key("XObject")
		for _, m := range placement.FindAllStringSubmatch(content, -1) {
			img := Image{Name: m[5]}
			img.W, _ = strconv.ParseFloat(m[1], 64)
			img.H, _ = strconv.ParseFloat(m[2], 64)
			img.X, _ = strconv.ParseFloat(m[3], 64)
			img.Y, _ = strconv.ParseFloat(m[4], 64)

			x := xobjects.Key(img.Name)
			if x.Key("Subtype").Name() != "Image" {
				continue
			}
			img.Width = x.Key("Width").Int64()
			img.Height = x.Key("Height").Int64()
			img.Filter = x.Key("Filter").Name()
			img.Length = x.Key("Length").Int64()
			pg.Images = append(pg.Images, img)
		}
		pages = append(pages, pg)
	}
	return pages, nil
}

// inherited looks up key on the page and then on its ancestors.
func inherited(v pdf.Value, key string) pdf.Value {
	for !v.IsNull() {
		if x := v.Key(key); !x.IsNull() {
			return x
		}
		v = v.Key("Parent")
	}
	return v
}

func readContent(v pdf.Value) (string, error) {
	if v.Kind() == pdf.Array {
		var b bytes.Buffer
		for i := 0; i < v.Len(); i++ {
			s, err := readContent(v.Index(i))
			if err != nil {
				return "", err
			}
			b.WriteString(s)
			b.WriteByte('\n')
		}
		return b.String(), nil
	}
	if v.Kind() != pdf.Stream {
		return "", nil
	}
	rc := v.Reader()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading content stream: %w", err)
	}
	return string(data), nil
}

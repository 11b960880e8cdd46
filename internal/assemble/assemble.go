// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns an ordered list of JPEG images into one multi-page
// PDF document, one fixed-size page per image.
//
// Pages are built strictly in order. Each page reads its image, decodes the
// base64 payload, embeds it as a JPEG image object and draws it in the page
// box. Any failure aborts the whole document.
package assemble

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/snap2pdf/pkg/types"
)

const (
	imageTypeJPEG = "JPG"
	unitPoints    = "pt"
	orientation   = "P"
	producer      = "snap2pdf"
)

// ErrEmptyCollection is returned when there is nothing to assemble.
var ErrEmptyCollection = errors.New("no images to assemble")

// PageError reports the page whose image could not be read or embedded.
type PageError struct {
	Page int // 1-based
	URI  string
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d (%s): %v", e.Page, e.URI, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }

// Source provides image content as base64 payloads.
type Source interface {
	ReadBase64(uri string) (string, error)
}

// Options configures an Assembler.
type Options struct {
	// Page is the page geometry; zero fields take defaults.
	Page types.PageConfig

	// Title is written to the document information dictionary.
	Title string

	// Now supplies the creation date. Defaults to time.Now.
	Now func() time.Time

	// Logger receives per-page debug output. Defaults to log.Default().
	Logger *log.Logger
}

// Assembler builds PDF documents from image entries.
type Assembler struct {
	src    Source
	geom   Geometry
	title  string
	now    func() time.Time
	logger *log.Logger
}

// New returns an Assembler reading images from src.
func New(src Source, opts Options) (*Assembler, error) {
	geom, err := NewGeometry(opts.Page)
	if err != nil {
		return nil, err
	}
	a := &Assembler{
		src:    src,
		geom:   geom,
		title:  opts.Title,
		now:    opts.Now,
		logger: opts.Logger,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	return a, nil
}

// Assemble builds the document for entries and returns its serialized
// bytes. The page count equals len(entries) and page i shows entries[i].
// An empty list returns ErrEmptyCollection.
func (a *Assembler) Assemble(ctx context.Context, entries []types.ImageEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCollection
	}

	size := gofpdf.SizeType{Wd: a.geom.PageWidth, Ht: a.geom.PageHeight}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        unitPoints,
		Size:           size,
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(a.now())
	doc.SetProducer(producer, false)
	doc.SetCreator(producer, false)
	if a.title != "" {
		doc.SetTitle(a.title, true)
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.addPage(doc, size, i, e); err != nil {
			return nil, &PageError{Page: i + 1, URI: e.URI, Err: err}
		}
		a.logger.Debug("page assembled", "page", i+1, "uri", e.URI)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *Assembler) addPage(doc *gofpdf.Fpdf, size gofpdf.SizeType, i int, e types.ImageEntry) error {
	payload, err := a.src.ReadBase64(e.URI)
	if err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding base64 payload: %w", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not a JPEG image: %w", err)
	}

	doc.AddPageFormat(orientation, size)

	// Names are per page so repeated URIs still produce one image per page.
	name := fmt.Sprintf("page-%04d", i+1)
	opts := gofpdf.ImageOptions{ImageType: imageTypeJPEG}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if doc.Err() {
		return fmt.Errorf("embedding image: %w", doc.Error())
	}

	r := a.geom.Place(cfg.Width, cfg.Height)
	// gofpdf measures y from the top edge.
	top := a.geom.PageHeight - r.Y - r.H
	doc.ImageOptions(name, r.X, top, r.W, r.H, false, opts, 0, "")
	if doc.Err() {
		return fmt.Errorf("drawing image: %w", doc.Error())
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs one export end to end: assemble the collection into
// a PDF, verify it, write it to the document directory, record it in the
// ledger, and hand it to the share target.
//
// Assembly happens fully in memory before anything is written, so a failed
// assembly never leaves a file behind.
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/snap2pdf/internal/share"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// Assembler builds a document from entries.
type Assembler interface {
	Assemble(ctx context.Context, entries []types.ImageEntry) ([]byte, error)
}

// Verifier checks a serialized document and returns its page count.
type Verifier func(r io.ReadSeeker) (int, error)

// Recorder stores export history.
type Recorder interface {
	Record(ctx context.Context, rec types.ExportRecord) (types.ExportRecord, error)
	MarkShared(ctx context.Context, id string) error
}

// Source is a read-only view of the ordered image list.
type Source interface {
	Entries() []types.ImageEntry
}

// Result describes a finished export.
type Result struct {
	Path     string        `json:"path"`
	Pages    int           `json:"pages"`
	Bytes    int64         `json:"bytes"`
	SHA256   string        `json:"sha256"`
	Shared   bool          `json:"shared"`
	Elapsed  time.Duration `json:"elapsed"`
	RecordID string        `json:"record_id,omitempty"`
}

// Exporter wires the export stages together. Verify, Ledger and Sharer
// are optional.
type Exporter struct {
	Assembler Assembler
	Writer    *Writer
	Verify    Verifier
	Ledger    Recorder
	Sharer    share.Sharer
	Logger    *log.Logger
}

// Export assembles src under name. Status lines go to w.
//
// If the share target is unavailable a notice is printed and the export
// still succeeds with Result.Shared false. A share failure is returned
// together with the Result, since the file has already been written.
func (e *Exporter) Export(ctx context.Context, src Source, name string, w io.Writer) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	start := time.Now()
	entries := src.Entries()

	fmt.Fprintf(w, "assembling: %s (%d images)\n", name, len(entries))
	doc, err := e.Assembler.Assemble(ctx, entries)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return nil, fmt.Errorf("assembling %s: %w", name, err)
	}

	if e.Verify != nil {
		pages, err := e.Verify(bytes.NewReader(doc))
		if err == nil && pages != len(entries) {
			err = fmt.Errorf("document has %d pages, want %d", pages, len(entries))
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			return nil, fmt.Errorf("verifying %s: %w", name, err)
		}
	}

	path, err := e.Writer.Write(doc, name)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}

	sum := sha256.Sum256(doc)
	res := &Result{
		Path:   path,
		Pages:  len(entries),
		Bytes:  int64(len(doc)),
		SHA256: hex.EncodeToString(sum[:]),
	}
	fmt.Fprintf(w, "written: %s (%d pages, %d bytes)\n", path, res.Pages, res.Bytes)

	if e.Ledger != nil {
		rec, err := e.Ledger.Record(ctx, types.ExportRecord{
			Name:   name,
			Path:   path,
			Pages:  res.Pages,
			Bytes:  res.Bytes,
			SHA256: res.SHA256,
		})
		if err != nil {
			logger.Warn("export not recorded in history", "err", err)
		} else {
			res.RecordID = rec.ID
		}
	}

	err = share.Share(ctx, e.Sharer, path)
	switch {
	case errors.Is(err, share.ErrShareUnavailable):
		fmt.Fprintf(w, "notice:  sharing is not available, file kept at %s\n", path)
	case err != nil:
		res.Elapsed = time.Since(start)
		return res, err
	default:
		res.Shared = true
		fmt.Fprintf(w, "shared:  %s via %s\n", path, e.Sharer.Name())
		if e.Ledger != nil && res.RecordID != "" {
			if err := e.Ledger.MarkShared(ctx, res.RecordID); err != nil {
				logger.Warn("share not recorded in history", "err", err)
			}
		}
	}

	res.Elapsed = time.Since(start)
	logger.Debug("export finished", "path", path, "elapsed", res.Elapsed)
	return res, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ImageEntry is one selected image in display and page order.
// Entries are immutable once created; reordering replaces the whole list.
type ImageEntry struct {
	// URI is an opaque handle to the local image resource (a file path
	// inside the picker cache for images selected on the command line).
	URI string `json:"uri" yaml:"uri"`

	// Color is the display tag in "#RRGGBB" form, used only to tell entries
	// apart while reordering.
	Color string `json:"color" yaml:"color"`
}

// DefaultDocumentName is the base name used when the user does not pick one.
const DefaultDocumentName = "MyDocument"

// ExportRecord describes one successful export as kept in the ledger.
type ExportRecord struct {
	// ID uniquely identifies the export.
	ID string `json:"id" yaml:"id"`

	// Name is the document name without extension, stored verbatim.
	Name string `json:"name" yaml:"name"`

	// Path is the absolute path of the written PDF.
	Path string `json:"path" yaml:"path"`

	// Pages is the number of pages in the document.
	Pages int `json:"pages" yaml:"pages"`

	// Bytes is the size of the assembled document.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// SHA256 is the hex digest of the assembled document.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Shared reports whether the file was handed to a share target.
	Shared bool `json:"shared" yaml:"shared"`

	// CreatedAt is when the export finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrExists is returned when a document of the same name already exists
// and overwriting is disabled.
var ErrExists = errors.New("document already exists")

// DocumentStore is the filesystem boundary used by the output writer.
type DocumentStore interface {
	DocumentPath(name string) string
	WriteBase64(path, payload string) error
	Exists(path string) (bool, error)
}

// Writer persists assembled documents under the store's document
// directory as "<name>.pdf".
type Writer struct {
	store     DocumentStore
	overwrite bool
}

// NewWriter returns a Writer. With overwrite set, an existing file of the
// same name is replaced; otherwise Write returns ErrExists.
func NewWriter(store DocumentStore, overwrite bool) *Writer {
	return &Writer{store: store, overwrite: overwrite}
}

// Write base64-encodes doc and writes it for name, returning the path.
// The name is used verbatim.
func (w *Writer) Write(doc []byte, name string) (string, error) {
	if name == "" {
		return "", errors.New("document name is empty")
	}
	path := w.store.DocumentPath(name)

	if !w.overwrite {
		exists, err := w.store.Exists(path)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if exists {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if err := w.store.WriteBase64(path, base64.StdEncoding.EncodeToString(doc)); err != nil {
		return "", err
	}
	return path, nil
}

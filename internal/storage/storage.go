// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage is the filesystem boundary: images are read and documents
// are written as base64 payloads, the way the device file APIs exchange
// them. Documents always land in one fixed document directory.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	fileScheme = "file://"
	pdfExt     = ".pdf"
	partSuffix = ".part"
)

// Store reads image resources and writes documents on an afero filesystem.
type Store struct {
	fs     afero.Fs
	docDir string
}

// New returns a Store on fs writing documents under docDir.
func New(fs afero.Fs, docDir string) *Store {
	return &Store{fs: fs, docDir: docDir}
}

// NewOS returns a Store on the operating system filesystem.
func NewOS(docDir string) *Store {
	return New(afero.NewOsFs(), docDir)
}

// DocumentDir returns the fixed output directory.
func (s *Store) DocumentDir() string { return s.docDir }

// DocumentPath returns the output path for a document name. The name is
// used verbatim.
func (s *Store) DocumentPath(name string) string {
	return filepath.Join(s.docDir, name+pdfExt)
}

// ReadBase64 returns the full content of the resource at uri, base64
// encoded. Both plain paths and file:// URIs are accepted.
func (s *Store) ReadBase64(uri string) (string, error) {
	data, err := afero.ReadFile(s.fs, pathFromURI(uri))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", uri, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// WriteBase64 decodes payload and writes it to path. The bytes are written
// to a sibling temporary file first and renamed into place, so a failed
// write never leaves a truncated document at path. An existing file at
// path is replaced.
func (s *Store) WriteBase64(path, payload string) error {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding payload for %s: %w", path, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp := path + partSuffix
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		s.Remove(tmp)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		s.Remove(tmp)
		return fmt.Errorf("moving %s into place: %w", path, err)
	}
	return nil
}

// Remove deletes the file at path. A missing file is not an error.
func (s *Store) Remove(path string) error {
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

func pathFromURI(uri string) string {
	return strings.TrimPrefix(uri, fileScheme)
}

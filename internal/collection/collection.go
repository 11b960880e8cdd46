// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collection holds the ordered list of selected images whose order
// becomes the page order of the exported document.
//
// A Collection has a single owner. It is mutated by selection (Append),
// manual reordering (Reorder), and removal (Remove); the assembly pipeline
// only reads a snapshot taken with Entries.
package collection

import (
	"errors"
	"fmt"

	"github.com/pdiddy/snap2pdf/pkg/types"
)

var (
	// ErrNotPermutation is returned by Reorder when the proposed order does
	// not contain exactly the current entries.
	ErrNotPermutation = errors.New("new order is not a permutation of the current images")

	// ErrIndexOutOfRange is returned by Remove for an invalid position.
	ErrIndexOutOfRange = errors.New("image index out of range")
)

// Collection is an ordered sequence of image entries. Insertion order is
// display order and page order. The zero value is an empty collection.
type Collection struct {
	entries []types.ImageEntry
}

// New returns a collection holding a copy of entries.
func New(entries ...types.ImageEntry) *Collection {
	c := &Collection{}
	c.Append(entries...)
	return c
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in order.
func (c *Collection) Entries() []types.ImageEntry {
	out := make([]types.ImageEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// At returns the entry at position i.
func (c *Collection) At(i int) (types.ImageEntry, error) {
	if i < 0 || i >= len(c.entries) {
		return types.ImageEntry{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(c.entries))
	}
	return c.entries[i], nil
}

// Append adds entries to the end, keeping existing order and the relative
// order of the new entries. Duplicates are kept.
func (c *Collection) Append(entries ...types.ImageEntry) {
	c.entries = append(c.entries, entries...)
}

// Reorder replaces the collection with next. next must hold the same
// multiset of entries as the collection; otherwise ErrNotPermutation is
// returned and the collection is unchanged.
func (c *Collection) Reorder(next []types.ImageEntry) error {
	if err := checkPermutation(c.entries, next); err != nil {
		return err
	}
	c.entries = append(c.entries[:0:0], next...)
	return nil
}

// Remove deletes the entry at position i, shifting later entries up.
func (c *Collection) Remove(i int) (types.ImageEntry, error) {
	e, err := c.At(i)
	if err != nil {
		return types.ImageEntry{}, err
	}
	c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
	return e, nil
}

func checkPermutation(current, next []types.ImageEntry) error {
	if len(current) != len(next) {
		return fmt.Errorf("%w: have %d images, got %d", ErrNotPermutation, len(current), len(next))
	}
	counts := make(map[types.ImageEntry]int, len(current))
	for _, e := range current {
		counts[e]++
	}
	for _, e := range next {
		if counts[e] == 0 {
			return fmt.Errorf("%w: unexpected image %s", ErrNotPermutation, e.URI)
		}
		counts[e]--
	}
	return nil
}

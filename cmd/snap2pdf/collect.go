// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/pdiddy/snap2pdf/internal/collection"
	"github.com/pdiddy/snap2pdf/internal/colortag"
	"github.com/pdiddy/snap2pdf/internal/media"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// gathered is the collection built for one command, plus the document name
// a manifest asked for.
type gathered struct {
	images       *collection.Collection
	manifestName string
}

// gather builds the session collection: manifest entries first, then the
// images picked from paths. It returns media.ErrCancelled when nothing was
// selected.
func gather(ctx context.Context, cfg types.PickerConfig, paths []string, manifest string, w io.Writer, logger *log.Logger) (*gathered, error) {
	g := &gathered{images: collection.New()}
	colors := colortag.Default

	if manifest != "" {
		m, err := collection.LoadManifest(afero.NewOsFs(), manifest, colors)
		if err != nil {
			return nil, err
		}
		g.images.Append(m.Images...)
		g.manifestName = m.Name
		fmt.Fprintf(w, "manifest: %s (%d images)\n", manifest, len(m.Images))
	}

	if len(paths) > 0 {
		picker, err := media.NewPicker(afero.NewOsFs(), cfg, logger)
		if err != nil {
			return nil, err
		}
		sel, err := picker.Pick(ctx, paths)
		for _, p := range sel.Denied {
			fmt.Fprintf(w, "denied:  %s\n", p)
		}
		for _, p := range sel.Skipped {
			fmt.Fprintf(w, "skipped: %s\n", p)
		}
		switch {
		case errors.Is(err, media.ErrCancelled):
		case err != nil:
			return nil, err
		default:
			entries := sel.Entries(colors)
			g.images.Append(entries...)
			for i, e := range entries {
				fmt.Fprintf(w, "added:   %s %s\n", e.Color, sel.Sources[i])
			}
		}
	}

	if g.images.Len() == 0 {
		return nil, media.ErrCancelled
	}
	return g, nil
}

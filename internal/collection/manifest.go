// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collection

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/snap2pdf/internal/colortag"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// Manifest is a hand-written list of images to export, in page order.
// It is an input format only; the tool never writes manifests.
type Manifest struct {
	// Name optionally overrides the document name.
	Name string `yaml:"name,omitempty"`

	// Images lists the entries. Relative URIs are resolved against the
	// manifest's directory. A missing color is generated.
	Images []types.ImageEntry `yaml:"images"`
}

const fileScheme = "file://"

// LoadManifest reads a YAML manifest from path on fs and returns its
// entries with resolved URIs and a color for every entry.
func LoadManifest(fs afero.Fs, path string, colors *colortag.Generator) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data, filepath.Dir(path), colors)
}

// ParseManifest decodes manifest YAML. baseDir anchors relative paths;
// absolute paths and file:// URIs are kept as written.
func ParseManifest(data []byte, baseDir string, colors *colortag.Generator) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	for i := range m.Images {
		e := &m.Images[i]
		if e.URI == "" {
			return nil, fmt.Errorf("manifest image %d: missing uri", i+1)
		}
		if !strings.HasPrefix(e.URI, fileScheme) && !filepath.IsAbs(e.URI) && baseDir != "" {
			e.URI = filepath.Join(baseDir, e.URI)
		}
		switch {
		case e.Color == "":
			e.Color = colors.Next()
		case !colortag.Valid(e.Color):
			return nil, fmt.Errorf("manifest image %d: invalid color %q", i+1, e.Color)
		}
	}
	return &m, nil
}

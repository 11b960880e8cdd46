// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media selects images from local storage, standing in for a
// device media-library picker. Selected images are re-encoded as JPEG at
// the configured quality into a cache directory, and the cache paths are
// returned as resource URIs.
package media

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/snap2pdf/internal/colortag"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

// KindImages is the only supported media kind.
const KindImages = "images"

const defaultQuality = 0.5

// ErrCancelled is returned when a pick yields no images. Callers treat it
// as a no-op.
var ErrCancelled = errors.New("selection cancelled")

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImagePath reports whether path has a supported image extension.
func IsImagePath(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Selection is the outcome of one pick.
type Selection struct {
	// URIs are the cached JPEG copies, in selection order.
	URIs []string
	// Sources are the original paths, parallel to URIs.
	Sources []string
	// Denied lists inputs skipped for lack of read permission.
	Denied []string
	// Skipped lists inputs that are not decodable images.
	Skipped []string
}

// Entries pairs every URI with a fresh display color.
func (s Selection) Entries(colors *colortag.Generator) []types.ImageEntry {
	out := make([]types.ImageEntry, len(s.URIs))
	for i, uri := range s.URIs {
		out[i] = types.ImageEntry{URI: uri, Color: colors.Next()}
	}
	return out
}

// Picker selects images from a filesystem.
type Picker struct {
	fs      afero.Fs
	cfg     types.PickerConfig
	quality int
	logger  *log.Logger
}

// NewPicker validates cfg and returns a Picker reading from fs.
func NewPicker(fs afero.Fs, cfg types.PickerConfig, logger *log.Logger) (*Picker, error) {
	if cfg.Kind == "" {
		cfg.Kind = KindImages
	}
	if cfg.Kind != KindImages {
		return nil, fmt.Errorf("unsupported media kind %q", cfg.Kind)
	}
	if cfg.Quality == 0 {
		cfg.Quality = defaultQuality
	}
	if cfg.Quality < 0 || cfg.Quality > 1 {
		return nil, fmt.Errorf("quality %g out of range (0, 1]", cfg.Quality)
	}
	if cfg.CacheDir == "" {
		return nil, errors.New("picker cache directory not set")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Picker{
		fs:      fs,
		cfg:     cfg,
		quality: int(cfg.Quality*100 + 0.5),
		logger:  logger,
	}, nil
}

// Pick expands paths (files, or directories whose images are taken in name
// order) and caches a JPEG copy of each image. Unreadable inputs are
// reported in Selection.Denied and skipped. A missing path is an error.
// When nothing was selected Pick returns ErrCancelled.
func (p *Picker) Pick(ctx context.Context, paths []string) (Selection, error) {
	var sel Selection

	candidates, err := p.expand(paths, &sel)
	if err != nil {
		return Selection{}, err
	}

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return Selection{}, err
		}
		uri, err := p.cache(path)
		if err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				p.logger.Warn("permission denied, skipping", "path", path)
				sel.Denied = append(sel.Denied, path)
				continue
			}
			p.logger.Warn("not a readable image, skipping", "path", path, "err", err)
			sel.Skipped = append(sel.Skipped, path)
			continue
		}
		sel.URIs = append(sel.URIs, uri)
		sel.Sources = append(sel.Sources, path)
		if !p.cfg.AllowMultiple {
			break
		}
	}

	if len(sel.URIs) == 0 {
		return sel, ErrCancelled
	}
	return sel, nil
}

func (p *Picker) expand(paths []string, sel *Selection) ([]string, error) {
	var out []string
	for _, path := range paths {
		if err := CheckAccess(p.fs, path); err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				p.logger.Warn("permission denied, skipping", "path", path)
				sel.Denied = append(sel.Denied, path)
				continue
			}
			return nil, fmt.Errorf("selecting %s: %w", path, err)
		}

		info, err := p.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("selecting %s: %w", path, err)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}

		children, err := afero.ReadDir(p.fs, path)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", path, err)
		}
		for _, c := range children {
			if c.IsDir() || strings.HasPrefix(c.Name(), ".") || !IsImagePath(c.Name()) {
				continue
			}
			out = append(out, filepath.Join(path, c.Name()))
		}
	}
	return out, nil
}

// cache decodes the image at path, applies its EXIF orientation, and
// writes a JPEG copy into the cache directory. The copy's name is derived
// from the source content so picking the same image twice reuses it.
func (p *Picker) cache(path string) (string, error) {
	if err := CheckAccess(p.fs, path); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := fmt.Sprintf("%s-%s-q%d.jpg", base, hex.EncodeToString(sum[:6]), p.quality)
	dst := filepath.Join(p.cfg.CacheDir, name)

	if err := p.fs.MkdirAll(p.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	if err := afero.WriteFile(p.fs, dst, out.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("caching %s: %w", path, err)
	}
	p.logger.Debug("image selected", "source", path, "uri", dst, "bytes", out.Len())
	return dst, nil
}

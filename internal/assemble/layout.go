// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"

	"github.com/pdiddy/snap2pdf/pkg/types"
)

// Default page geometry: ISO A4 at 72 dpi with a 20 pt margin.
const (
	DefaultPageWidth  = 595.0
	DefaultPageHeight = 842.0
	DefaultMargin     = 20.0
)

// Rect is a rectangle in PDF user space (origin at the bottom-left corner
// of the page, units in points).
type Rect struct {
	X, Y, W, H float64
}

// Geometry is a resolved page configuration.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Layout     types.LayoutMode
}

// NewGeometry fills unset fields of cfg with defaults and validates the
// result.
func NewGeometry(cfg types.PageConfig) (Geometry, error) {
	g := Geometry{
		PageWidth:  cfg.Width,
		PageHeight: cfg.Height,
		Margin:     DefaultMargin,
		Layout:     cfg.Layout,
	}
	if cfg.Margin != nil {
		g.Margin = *cfg.Margin
	}
	if g.PageWidth == 0 {
		g.PageWidth = DefaultPageWidth
	}
	if g.PageHeight == 0 {
		g.PageHeight = DefaultPageHeight
	}
	if g.Layout == "" {
		g.Layout = types.LayoutStretch
	}

	switch g.Layout {
	case types.LayoutStretch, types.LayoutFit:
	default:
		return Geometry{}, fmt.Errorf("unknown layout mode %q (want %s or %s)", g.Layout, types.LayoutStretch, types.LayoutFit)
	}
	if g.Margin < 0 || 2*g.Margin >= g.PageWidth || 2*g.Margin >= g.PageHeight {
		return Geometry{}, fmt.Errorf("margin %g does not fit a %gx%g page", g.Margin, g.PageWidth, g.PageHeight)
	}
	return g, nil
}

// Box returns the image box: the page inset by the margin on every side.
// For the defaults this is (20, 20) sized 555x802.
func (g Geometry) Box() Rect {
	return Rect{
		X: g.Margin,
		Y: g.Margin,
		W: g.PageWidth - 2*g.Margin,
		H: g.PageHeight - 2*g.Margin,
	}
}

// Place returns where an image of the given pixel size is drawn.
// In stretch mode this is always Box, whatever the image's aspect ratio.
// In fit mode the image is scaled uniformly to fit inside Box and centred.
func (g Geometry) Place(pxWidth, pxHeight int) Rect {
	box := g.Box()
	if g.Layout != types.LayoutFit || pxWidth <= 0 || pxHeight <= 0 {
		return box
	}

	scale := box.W / float64(pxWidth)
	if s := box.H / float64(pxHeight); s < scale {
		scale = s
	}
	w := float64(pxWidth) * scale
	h := float64(pxHeight) * scale
	return Rect{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}

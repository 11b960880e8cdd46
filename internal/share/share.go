// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package share hands a written document to a share target: the desktop
// opener, an HTTP upload endpoint, or nothing at all.
package share

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"github.com/pdiddy/snap2pdf/pkg/types"
)

// ErrShareUnavailable is returned when the configured target cannot be
// used. The document stays where it was written.
var ErrShareUnavailable = errors.New("sharing is not available")

// Sharer presents a file through some sharing mechanism.
type Sharer interface {
	// Name identifies the target in messages.
	Name() string

	// Available reports whether Share can be attempted.
	Available(ctx context.Context) bool

	// Share hands the file at path to the target.
	Share(ctx context.Context, path string) error
}

// Share checks availability and then shares path. It returns
// ErrShareUnavailable when s is unavailable.
func Share(ctx context.Context, s Sharer, path string) error {
	if s == nil || !s.Available(ctx) {
		return ErrShareUnavailable
	}
	if err := s.Share(ctx, path); err != nil {
		return fmt.Errorf("sharing %s via %s: %w", path, s.Name(), err)
	}
	return nil
}

// New builds the Sharer selected by cfg.
func New(cfg types.ShareConfig) (Sharer, error) {
	switch cfg.Backend {
	case types.ShareOpen, "":
		return DetectOpener(), nil
	case types.ShareUpload:
		client := &http.Client{Timeout: cfg.Timeout}
		return NewUploadSharer(client, afero.NewOsFs(), cfg)
	case types.ShareNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown share backend %q", cfg.Backend)
	}
}

// None is a Sharer that is never available.
type None struct{}

func (None) Name() string { return string(types.ShareNone) }

func (None) Available(context.Context) bool { return false }

func (None) Share(context.Context, string) error { return ErrShareUnavailable }

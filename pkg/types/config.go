// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by share targets that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "snap2pdf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// PickerConfig mirrors the options handed to a platform media picker.
type PickerConfig struct {
	// AllowMultiple keeps every selected image; when false only the first
	// image of a selection is used.
	AllowMultiple bool `json:"allow_multiple" yaml:"allow_multiple" mapstructure:"allow_multiple"`

	// Kind restricts the media type. Only "images" is supported.
	Kind string `json:"kind" yaml:"kind" mapstructure:"kind"`

	// Quality is the JPEG re-encoding quality in (0, 1] (default 0.5).
	Quality float64 `json:"quality" yaml:"quality" mapstructure:"quality"`

	// CacheDir receives the re-encoded copies of selected images.
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`
}

// LayoutMode selects how an image is placed within the page box.
type LayoutMode string

const (
	// LayoutStretch fills the image box exactly, ignoring aspect ratio.
	LayoutStretch LayoutMode = "stretch"
	// LayoutFit scales the image to fit inside the box, keeping aspect
	// ratio, and centres it.
	LayoutFit LayoutMode = "fit"
)

// PageConfig describes the fixed page geometry in PDF points.
type PageConfig struct {
	// Width is the page width (default 595).
	Width float64 `json:"width" yaml:"width" mapstructure:"width"`

	// Height is the page height (default 842).
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`

	// Margin is the distance of the image box from every page edge. Nil
	// means the default; zero is a valid margin.
	// (default 20).
	Margin *float64 `json:"margin,omitempty" yaml:"margin" mapstructure:"margin"`

	// Layout is stretch (default) or fit.
	Layout LayoutMode `json:"layout" yaml:"layout" mapstructure:"layout"`
}

// OutputConfig holds settings for the output writer.
type OutputConfig struct {
	// DocumentDir is the fixed directory receiving exported documents.
	DocumentDir string `json:"document_dir" yaml:"document_dir" mapstructure:"document_dir"`

	// Name is the default document base name (default "MyDocument").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Overwrite allows replacing an existing document of the same name
	// (default true).
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`

	// Ledger enables the export history database in DocumentDir.
	Ledger bool `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}

// ShareBackend identifies the share target.
type ShareBackend string

const (
	ShareOpen   ShareBackend = "open"
	ShareUpload ShareBackend = "upload"
	ShareNone   ShareBackend = "none"
)

// ShareConfig holds settings for the share step.
type ShareConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the share target: open, upload, or none.
	Backend ShareBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// UploadURL is the destination for the upload backend. The document
	// file name is appended as the last path segment.
	UploadURL string `json:"upload_url,omitempty" yaml:"upload_url,omitempty" mapstructure:"upload_url"`

	// Token is the bearer token for the upload backend.
	Token string `json:"-" yaml:"-" mapstructure:"token"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Picker PickerConfig `json:"picker" yaml:"picker" mapstructure:"picker"`
	Page   PageConfig   `json:"page" yaml:"page" mapstructure:"page"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Share  ShareConfig  `json:"share" yaml:"share" mapstructure:"share"`
}

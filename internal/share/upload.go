// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package share

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/pdiddy/snap2pdf/internal/httputil"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

const defaultUserAgent = "snap2pdf/0.1"

// UploadSharer shares a document by PUTting it to an HTTP endpoint.
type UploadSharer struct {
	client     *http.Client
	fs         afero.Fs
	base       *url.URL
	token      string
	userAgent  string
	maxRetries int
	logger     *log.Logger
}

// NewUploadSharer returns an UploadSharer for cfg.UploadURL that reads
// documents from fs.
func NewUploadSharer(client *http.Client, fs afero.Fs, cfg types.ShareConfig) (*UploadSharer, error) {
	if cfg.UploadURL == "" {
		return nil, errors.New("upload share target needs share.upload_url")
	}
	u, err := url.Parse(cfg.UploadURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upload URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("upload URL %q must be http or https", cfg.UploadURL)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &UploadSharer{
		client:     client,
		fs:         fs,
		base:       u,
		token:      cfg.Token,
		userAgent:  ua,
		maxRetries: cfg.MaxRetries,
		logger:     log.Default(),
	}, nil
}

// SetLogger replaces the logger used for retry warnings.
func (u *UploadSharer) SetLogger(l *log.Logger) { u.logger = l }

func (u *UploadSharer) Name() string { return "upload " + u.base.Host }

// Available reports whether an endpoint is configured.
func (u *UploadSharer) Available(context.Context) bool {
	return u.base != nil && u.base.Host != ""
}

// Target returns the URL a document at path is uploaded to.
func (u *UploadSharer) Target(path string) string {
	t := *u.base
	t.Path = strings.TrimSuffix(t.Path, "/") + "/" + filepath.Base(path)
	return t.String()
}

func (u *UploadSharer) Share(ctx context.Context, path string) error {
	data, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.Target(path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("User-Agent", u.userAgent)
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := httputil.DoWithRetry(ctx, u.client, req, u.maxRetries, u.logger)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

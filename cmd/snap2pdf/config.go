// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/snap2pdf/internal/media"
	"github.com/pdiddy/snap2pdf/internal/secrets"
	"github.com/pdiddy/snap2pdf/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "snap2pdf/0.1"
	defaultRetries   = 5
)

// envKeyReplacer maps nested keys such as output.document_dir to
// SNAP2PDF_OUTPUT_DOCUMENT_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

// dataDir returns the base directory for documents and cached images.
func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "snap2pdf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "snap2pdf"
	}
	return filepath.Join(home, ".local", "share", "snap2pdf")
}

func setDefaults(v *viper.Viper) {
	base := dataDir()

	v.SetDefault("picker.allow_multiple", true)
	v.SetDefault("picker.kind", media.KindImages)
	v.SetDefault("picker.quality", 0.5)
	v.SetDefault("picker.cache_dir", filepath.Join(base, "cache"))

	v.SetDefault("page.width", 595.0)
	v.SetDefault("page.height", 842.0)
	v.SetDefault("page.margin", 20.0)
	v.SetDefault("page.layout", string(types.LayoutStretch))

	v.SetDefault("output.document_dir", filepath.Join(base, "documents"))
	v.SetDefault("output.name", types.DefaultDocumentName)
	v.SetDefault("output.overwrite", true)
	v.SetDefault("output.ledger", true)

	v.SetDefault("share.backend", string(types.ShareOpen))
	v.SetDefault("share.timeout", defaultTimeout)
	v.SetDefault("share.user_agent", defaultUserAgent)
	v.SetDefault("share.max_retries", defaultRetries)
	v.SetDefault("share.upload_url", "")
	v.SetDefault("share.token", "")
}

// loadConfig decodes the merged configuration (defaults, config file,
// environment) into an AppConfig.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Share.Token = secretDefault(secrets.ShareToken, cfg.Share.Token)
	return cfg, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials for share targets from a directory of
// plain-text files. Each file is one secret: the filename is the key and
// the trimmed contents are the value.
//
// Supported key files: share-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// ShareToken is the bearer token used by the upload share target.
const ShareToken = "share-token"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(fs afero.Fs, dir string, logger *log.Logger) (map[string]string, error) {
	if logger == nil {
		logger = log.Default()
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package media

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ErrPermissionDenied is reported for inputs the process may not read.
// It is a soft failure: the picker skips the input and continues.
var ErrPermissionDenied = errors.New("media access permission denied")

// CheckAccess verifies that path exists and can be opened for reading.
// A permission problem wraps ErrPermissionDenied; a missing path wraps
// os.ErrNotExist.
func CheckAccess(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return err
	}
	f, err := fs.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return err
	}
	return f.Close()
}

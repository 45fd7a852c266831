// Package storage writes generated files so that readers never observe a
// partially written result.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFileAtomic writes data to a temporary file next to filename and renames
// it into place. On failure the previous content of filename is untouched and
// the temporary file is removed.
func WriteFileAtomic(fs afero.Fs, filename string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(fs, dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filename, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = fs.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = fs.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpName, filename, err)
	}
	return nil
}

// SamePath reports whether a and b name the same file after cleaning
func SamePath(a, b string) bool {
	ca, errA := filepath.Abs(a)
	cb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ca == cb
}

package file

import (
	"os"

	"github.com/pkg/errors"
)

// Exists returns true if a file or directory exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory at the given path, along with any missing
// parents, if it does not already exist.
func EnsureDir(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of %s",
				path,
			)
		}
		if err := os.MkdirAll(path, perm); err != nil {
			return errors.Wrapf(err, "error creating %s", path)
		}
	}
	return nil
}

package docfile

import (
	"errors"
	"io/fs"
	"os"
)

// IsUpToDate reports whether the target can be left alone: force is off, the
// target exists and it is not older than the source.
func IsUpToDate(source, target string, force bool) (bool, error) {
	if force {
		return false, nil
	}

	targetInfo, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	sourceInfo, err := os.Stat(source)
	if err != nil {
		return false, err
	}

	return !targetInfo.ModTime().Before(sourceInfo.ModTime()), nil
}

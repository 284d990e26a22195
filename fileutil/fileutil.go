package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// FileExists returns true if a file or directory with the given path exists.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// IsDir returns true if a directory with the given path exists.
func IsDir(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.IsDir()
}

// IsRegular returns true if the given path names a regular file, following
// symlinks.
func IsRegular(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.Mode().IsRegular()
}

// RegularFiles returns the names of the regular files directly inside dir,
// sorted by name. Subdirectories are not descended into. Symlinks are
// followed, so a link to a regular file is included. A nonexistent dir has no
// files and is not an error.
func RegularFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() || (e.Type()&fs.ModeSymlink != 0 && IsRegular(filepath.Join(dir, e.Name()))) {
			names = append(names, e.Name())
			continue
		}
		log.Debugf("ignoring non-regular entry: %s", filepath.Join(dir, e.Name()))
	}

	return names, nil
}

package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccollins476ad/imagefetch/fileutil"
	log "github.com/sirupsen/logrus"
)

// DefaultDir is the save directory used when none is configured. It is
// relative to the working directory.
const DefaultDir = "Fetched_Images"

// Store persists fetched images to a flat directory.
type Store struct {
	dir string // constant
}

func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{
		dir: dir,
	}
}

// Dir returns the store's save directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the path a file with the given name would be saved to.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// EnsureDir creates the save directory if it does not exist yet.
func (s *Store) EnsureDir() error {
	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}
	return nil
}

// Save writes b to the named file in the save directory and returns the
// file's path. An existing file with the same name is overwritten. The write
// is not atomic: a crash mid-write leaves a truncated file.
func (s *Store) Save(filename string, b []byte) (string, error) {
	err := s.EnsureDir()
	if err != nil {
		return "", err
	}

	destPath := s.Path(filename)
	if fileutil.FileExists(destPath) {
		log.Debugf("overwriting existing file: %s", destPath)
	}
	log.Debugf("saving %s (%d bytes)", destPath, len(b))

	err = os.WriteFile(destPath, b, 0644)
	if err != nil {
		return "", err
	}

	return destPath, nil
}

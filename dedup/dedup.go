// Package dedup detects fetched images whose content is byte-identical to a
// file already in the save directory. Content is compared by MD5 digest; a
// digest collision between distinct files is treated as a duplicate.
package dedup

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/ccollins476ad/imagefetch/fileutil"
	log "github.com/sirupsen/logrus"
)

// Detector reports whether content already exists in a save directory.
type Detector interface {
	// Match returns the name of a file whose content hash equals that of b,
	// or "" if there is none.
	Match(ctx context.Context, b []byte) (string, error)

	// Record notes that b was saved under the given filename.
	Record(filename string, b []byte)
}

// Hash returns the hex-encoded MD5 digest of b.
func Hash(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex-encoded MD5 digest of the named file's content.
func HashFile(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	_, err = io.Copy(h, f)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Scanner is a Detector that re-hashes every regular file in its directory
// on each call to Match. It keeps no state between calls, so it also sees
// files written by other processes.
type Scanner struct {
	dir string
}

func NewScanner(dir string) *Scanner {
	return &Scanner{
		dir: dir,
	}
}

// Match implements Detector#Match. Files are checked in name order and the
// first match wins.
func (s *Scanner) Match(ctx context.Context, b []byte) (string, error) {
	want := Hash(b)

	names, err := fileutil.RegularFiles(s.dir)
	if err != nil {
		return "", err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		have, err := HashFile(filepath.Join(s.dir, name))
		if err != nil {
			return "", err
		}
		if have == want {
			log.Debugf("content matches existing file: hash=%s file=%s", want, name)
			return name, nil
		}
	}

	return "", nil
}

// Record implements Detector#Record. It is a no-op; the next Match rescans
// the directory.
func (s *Scanner) Record(filename string, b []byte) {}

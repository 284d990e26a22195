package store

import (
	"strings"

	"github.com/flytam/filenamify"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// maxFilenameLength is the usual filesystem limit on a single path element.
const maxFilenameLength = 255

// URLToFilename returns the local filename an image fetched from url=u is
// saved under: the final segment of the url's path, made safe for use as a
// filename. If the path has no usable final segment (e.g., "http://host/" or
// "http://host/dir/"), it returns a generated name of the form
// image_<32 hex digits>.jpg. It never returns the empty string.
func URLToFilename(u string) string {
	segment := lastSegment(u)
	if segment == "" || segment == "." || segment == ".." {
		return GenerateFilename()
	}

	filename, err := filenamify.Filenamify(segment, filenamify.Options{MaxLength: maxFilenameLength})
	if err != nil || filename == "" {
		log.Debugf("unusable path segment, generating filename: url=%s segment=%q", u, segment)
		return GenerateFilename()
	}

	return filename
}

// GenerateFilename returns a random filename for an image whose url doesn't
// name one.
func GenerateFilename() string {
	id := uuid.New()
	return "image_" + strings.ReplaceAll(id.String(), "-", "") + ".jpg"
}

// lastSegment returns everything after the final slash of u's path. The path
// is taken verbatim from u: percent-encoded characters stay encoded and
// non-ascii characters stay as typed.
func lastSegment(u string) string {
	p := u
	if i := strings.Index(p, "://"); i >= 0 {
		// Skip the scheme and authority.
		p = p[i+len("://"):]
		j := strings.IndexAny(p, "/?#")
		if j < 0 {
			return ""
		}
		p = p[j:]
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	return p[strings.LastIndex(p, "/")+1:]
}

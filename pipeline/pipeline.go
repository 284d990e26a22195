// Package pipeline runs a single url through fetch, content-type check,
// duplicate check and save. Every failure is captured in the returned Result;
// Process never returns an error.
package pipeline

import (
	"context"
	"errors"

	"github.com/ccollins476ad/imagefetch/dedup"
	"github.com/ccollins476ad/imagefetch/download"
	"github.com/ccollins476ad/imagefetch/store"
	log "github.com/sirupsen/logrus"
)

// Outcome classifies how a url's processing ended.
type Outcome int

const (
	Saved          Outcome = iota // Image written to the save directory.
	NotImage                      // Skipped: content type is not an image type.
	Duplicate                     // Skipped: identical content already saved.
	NetworkFailure                // Fetch failed or server returned an error status.
	Failure                       // Anything else, e.g., a filesystem error.
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case NotImage:
		return "not-image"
	case Duplicate:
		return "duplicate"
	case NetworkFailure:
		return "network-failure"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Skipped reports whether the outcome is a skip rather than a save or error.
func (o Outcome) Skipped() bool {
	return o == NotImage || o == Duplicate
}

// Failed reports whether the outcome is an error.
func (o Outcome) Failed() bool {
	return o == NetworkFailure || o == Failure
}

// Result describes what happened to one url.
type Result struct {
	URL     string
	Outcome Outcome

	Filename    string // Saved: name of the written file.
	Path        string // Saved: path of the written file.
	ContentType string // NotImage: the rejected content type.
	Match       string // Duplicate: name of the existing identical file.
	Err         error  // NetworkFailure, Failure.
}

// Fetcher retrieves the image at a url. *download.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, u string) (*download.Content, error)
}

// Pipeline processes urls against a single save directory.
type Pipeline struct {
	f  Fetcher
	s  *store.Store
	dd dedup.Detector
}

func New(f Fetcher, s *store.Store, dd dedup.Detector) *Pipeline {
	return &Pipeline{
		f:  f,
		s:  s,
		dd: dd,
	}
}

// Process fetches url=u and saves it to the store unless it is not an image
// or its content is already saved.
func (p *Pipeline) Process(ctx context.Context, u string) Result {
	res := Result{URL: u}

	fail := func(o Outcome, err error) Result {
		log.WithError(err).Debugf("failed to process url: url=%s outcome=%s", u, o)
		res.Outcome = o
		res.Err = err
		return res
	}

	err := p.s.EnsureDir()
	if err != nil {
		return fail(Failure, err)
	}

	c, err := p.f.Fetch(ctx, u)
	if err != nil {
		var nie *download.NotImageError
		var ne *download.NetworkError
		switch {
		case errors.As(err, &nie):
			log.Debugf("skipping non-image: url=%s content_type=%s", u, nie.ContentType)
			res.Outcome = NotImage
			res.ContentType = nie.ContentType
			return res

		case errors.As(err, &ne):
			return fail(NetworkFailure, err)

		default:
			return fail(Failure, err)
		}
	}

	match, err := p.dd.Match(ctx, c.Body)
	if err != nil {
		return fail(Failure, err)
	}
	if match != "" {
		log.Debugf("skipping duplicate: url=%s match=%s", u, match)
		res.Outcome = Duplicate
		res.Match = match
		return res
	}

	filename := store.URLToFilename(u)
	path, err := p.s.Save(filename, c.Body)
	if err != nil {
		return fail(Failure, err)
	}
	p.dd.Record(filename, c.Body)

	res.Outcome = Saved
	res.Filename = filename
	res.Path = path
	return res
}

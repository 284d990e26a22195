package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ccollins476ad/imagefetch/dedup"
	"github.com/ccollins476ad/imagefetch/download"
	"github.com/ccollins476ad/imagefetch/fileutil"
	"github.com/ccollins476ad/imagefetch/pipeline"
	"github.com/ccollins476ad/imagefetch/store"
	log "github.com/sirupsen/logrus"
	"mvdan.cc/xurls/v2"
)

const prompt = "Enter one or more image URLs (separated by spaces or commas): "

// Summary counts the outcomes of a session.
type Summary struct {
	Saved   int
	Skipped int
	Failed  int
}

func (sm *Summary) add(o pipeline.Outcome) {
	switch {
	case o.Failed():
		sm.Failed++
	case o.Skipped():
		sm.Skipped++
	default:
		sm.Saved++
	}
}

// Session reads urls from the user and runs each one through the pipeline,
// one at a time, printing a status line per url.
type Session struct {
	cfg *Config
	in  io.Reader
	out io.Writer
	p   *pipeline.Pipeline
}

// newSession wires a pipeline for the configured save directory. With
// cfg.Index, the directory is hashed up front; if that fails the session
// falls back to rescanning on every url.
func newSession(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) *Session {
	s := store.New(cfg.SaveDir)
	if !fileutil.IsDir(s.Dir()) {
		log.Debugf("save directory does not exist yet, creating on first url: %s", s.Dir())
	}

	var dd dedup.Detector = dedup.NewScanner(s.Dir())
	if cfg.Index {
		idx, err := dedup.BuildIndex(ctx, s.Dir(), cfg.Jobs)
		if err != nil {
			log.WithError(err).Warnf("failed to index save directory, rescanning per url instead: dir=%s", s.Dir())
		} else {
			log.Debugf("indexed %d files in %s", idx.Len(), s.Dir())
			dd = idx
		}
	}

	return &Session{
		cfg: cfg,
		in:  in,
		out: out,
		p:   pipeline.New(download.NewFetcher(cfg.Timeout), s, dd),
	}
}

// Run executes the session: banner, input, one line per url, summary. It
// always completes; per-url failures are reported, not returned.
func (s *Session) Run(ctx context.Context) Summary {
	fmt.Fprintln(s.out, "🌍 Welcome to the Ubuntu Image Fetcher")
	fmt.Fprintln(s.out, "A tool for mindfully collecting images from the web.")
	fmt.Fprintln(s.out)

	urls := s.cfg.URLs
	if len(urls) == 0 {
		fmt.Fprint(s.out, prompt)
		line, err := readLine(download.NewContextReader(ctx, s.in))
		if err != nil {
			log.WithError(err).Errorf("failed to read input")
		}
		urls = splitURLs(line)
	} else {
		urls = splitURLs(strings.Join(urls, " "))
	}

	var sm Summary
	for _, u := range urls {
		res := s.p.Process(ctx, u)
		sm.add(res.Outcome)
		fmt.Fprintln(s.out, formatResult(res))
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "✨ Task completed: %d saved, %d skipped, %d failed. Images organized in '%s'.\n",
		sm.Saved, sm.Skipped, sm.Failed, s.cfg.SaveDir)

	return sm
}

// readLine reads a single line of input without its line terminator. Hitting
// EOF before a newline is not an error.
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// splitURLs splits a line of user input into url tokens. Commas and
// whitespace both separate urls, in any mix. Punctuation pasted around a url,
// such as angle brackets, quotes or a sentence-ending period, is trimmed off.
// A token holding no url is kept as is and fails when fetched.
func splitURLs(line string) []string {
	rx := xurls.Strict()

	var urls []string
	for _, tok := range strings.Fields(strings.ReplaceAll(line, ",", " ")) {
		if u := rx.FindString(tok); u != "" && u != tok {
			log.Debugf("trimming url token: %s --> %s", tok, u)
			tok = u
		}
		urls = append(urls, tok)
	}

	return urls
}

// formatResult returns the status line reported for a processed url.
func formatResult(res pipeline.Result) string {
	switch res.Outcome {
	case pipeline.Saved:
		return fmt.Sprintf("✓ Saved %s to %s", res.Filename, res.Path)
	case pipeline.NotImage:
		return fmt.Sprintf("✗ Skipped %s (not an image, got %s)", res.URL, res.ContentType)
	case pipeline.Duplicate:
		return fmt.Sprintf("⚠ Duplicate detected. Skipped: %s (matches %s)", res.URL, res.Match)
	case pipeline.NetworkFailure:
		return fmt.Sprintf("✗ Network issue with %s: %v", res.URL, res.Err)
	default:
		return fmt.Sprintf("✗ Error while handling %s: %v", res.URL, res.Err)
	}
}

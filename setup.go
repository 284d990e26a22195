package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccollins476ad/imagefetch/download"
	"github.com/ccollins476ad/imagefetch/store"
)

type Config struct {
	SaveDir string        // Directory fetched images are saved to.
	Timeout time.Duration // Per-request timeout.
	Index   bool          // True to hash the save directory once per session.
	Jobs    int           // Number of goroutines hashing files for the index.
	Verbose bool          // True for verbose output.
	URLs    []string      // URLs given on the command line; empty to prompt.
}

func parseArgs(fs *flag.FlagSet, args []string) (*Config, error) {
	saveDir := fs.String("d", store.DefaultDir, "save directory")
	timeout := fs.Duration("t", download.DefaultTimeout, "request timeout")
	index := fs.Bool("index", false, "hash the save directory once instead of on every url")
	jobs := fs.Int("j", 1, "jobs used to build the index")
	verbose := fs.Bool("v", false, "verbose output")

	fs.Usage = func() { usage(fs) }
	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}

	if *saveDir == "" {
		return nil, fmt.Errorf("save directory must not be empty")
	}
	if *timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive: have=%s", *timeout)
	}
	if *jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1: have=%d", *jobs)
	}

	return &Config{
		SaveDir: *saveDir,
		Timeout: *timeout,
		Index:   *index,
		Jobs:    *jobs,
		Verbose: *verbose,
		URLs:    fs.Args(),
	}, nil
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: %s [option]... [url]...\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(fs.Output(), "Fetches images from the web into a local directory, skipping duplicates.\n")
	fmt.Fprintf(fs.Output(), "Prompts for urls if none are given.\n")
	fs.PrintDefaults()
}

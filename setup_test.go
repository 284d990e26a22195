package main

import (
	"flag"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/ccollins476ad/imagefetch/download"
	"github.com/ccollins476ad/imagefetch/store"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("imagefetch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("parseArgs() failed: %v", err)
	}

	want := &Config{
		SaveDir: store.DefaultDir,
		Timeout: download.DefaultTimeout,
		Jobs:    1,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %+v, got %+v", want, cfg)
	}
}

func TestParseArgs(t *testing.T) {
	args := []string{"-d", "pics", "-t", "3s", "-index", "-j", "4", "-v", "http://a/x.png", "http://b/y.png"}

	cfg, err := parseArgs(newFlagSet(), args)
	if err != nil {
		t.Fatalf("parseArgs() failed: %v", err)
	}

	want := &Config{
		SaveDir: "pics",
		Timeout: 3 * time.Second,
		Index:   true,
		Jobs:    4,
		Verbose: true,
		URLs:    []string{"http://a/x.png", "http://b/y.png"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Expected %+v, got %+v", want, cfg)
	}
}

func TestParseArgsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-d", ""},
		{"-t", "0s"},
		{"-j", "0"},
		{"-bogus"},
	} {
		if _, err := parseArgs(newFlagSet(), args); err == nil {
			t.Errorf("parseArgs(%q): expected error, got nil", args)
		}
	}
}

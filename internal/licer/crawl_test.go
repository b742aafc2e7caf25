// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"licer/testutil"
	"licer/txtar"
)

func extractRepo(t *testing.T) string {
	t.Helper()
	ar, err := txtar.ParseFile(filepath.Join("testdata", "repo.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	testutil.ExtractTxtar(t, ar, dir)
	return dir
}

func TestCrawlerRun(t *testing.T) {
	dir := extractRepo(t)
	c := &Crawler{Processor: &Processor{Config: student, Year: 2025}, Workers: 2}

	sum, err := c.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}

	type row struct {
		Path   string
		Action Action
	}
	var got []row
	for _, f := range sum.Files {
		got = append(got, row{f.Path, f.Action})
	}
	want := []row{
		{"LICENSE", ActionSkip},
		{"docs/README.md", ActionSkip},
		{"main.go", ActionAdd},
		{"pkg/done.py", ActionSkip},
		{"scripts/build", ActionAdd},
		{"vendor/lib.go", ActionSkip},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertEqual(t, sum.Stats, Stats{Processed: 6, Modified: 2, Skipped: 4})
	testutil.AssertEqual(t, sum.License, true)

	testutil.AssertEqual(t, readFile(t, filepath.Join(dir, "main.go")), mitGo+"\npackage main\n\nfunc main() {}\n")
	testutil.AssertEqual(t, readFile(t, filepath.Join(dir, "scripts", "build")), "#!/bin/sh\n\n"+mitPython+"\ngo build ./...\n")
	testutil.AssertEqual(t, readFile(t, filepath.Join(dir, ".git", "HEAD")), "ref: refs/heads/main\n")
	if !strings.HasPrefix(readFile(t, filepath.Join(dir, "LICENSE")), "MIT License\n\nCopyright (c) 2025 Jane Doe\n") {
		t.Error("LICENSE does not carry the MIT text")
	}
}

func TestCrawlerRunTwice(t *testing.T) {
	dir := extractRepo(t)
	c := &Crawler{Processor: &Processor{Config: student, Year: 2025}}

	if _, err := c.Run(context.Background(), dir); err != nil {
		t.Fatalf("first Run(): %v", err)
	}
	before := testutil.BuildTxtar(t, dir)

	sum, err := c.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("second Run(): %v", err)
	}
	testutil.AssertEqual(t, sum.Stats.Modified, int64(0))
	testutil.AssertEqual(t, sum.License, false)
	if diff := cmp.Diff(string(before), string(testutil.BuildTxtar(t, dir))); diff != "" {
		t.Errorf("second run changed the tree (-first +second):\n%s", diff)
	}
}

func TestCrawlerRunRemove(t *testing.T) {
	dir := extractRepo(t)
	c := &Crawler{Processor: &Processor{Config: student, Remove: true}}

	sum, err := c.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run(): %v", err)
	}
	testutil.AssertEqual(t, sum.License, false)
	testutil.AssertEqual(t, sum.Stats.Modified, int64(1))
	testutil.AssertEqual(t, readFile(t, filepath.Join(dir, "pkg", "done.py")), "x = 1\n")
	if _, err := os.Stat(filepath.Join(dir, "LICENSE")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LICENSE written in remove mode: %v", err)
	}
}

func TestCrawlerRunCanceled(t *testing.T) {
	dir := extractRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Crawler{Processor: &Processor{Config: student}}
	if _, err := c.Run(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want %v", err, context.Canceled)
	}
}

func TestCrawlerRejectsForceWithRemove(t *testing.T) {
	c := &Crawler{Processor: &Processor{Config: student, Force: true, Remove: true}}
	if _, err := c.Run(context.Background(), t.TempDir()); !errors.Is(err, ErrForceRemove) {
		t.Fatalf("Run() = %v, want %v", err, ErrForceRemove)
	}
}

func TestSummaryPrint(t *testing.T) {
	sum := &Summary{
		Files: []FileResult{
			{Path: "a.go", Result: Result{Action: ActionAdd, Reason: "Added MIT header", Modified: true}},
			{Path: "b.md", Result: Result{Action: ActionSkip, Reason: "Excluded file type"}},
		},
		Stats: Stats{Processed: 2, Modified: 1, Skipped: 1},
	}
	var buf bytes.Buffer
	sum.PrintResults(&buf)
	sum.PrintStats(&buf)

	want := "[ADD] a.go - Added MIT header\n" +
		"[SKIP] b.md - Excluded file type\n" +
		"\n=== Processing Summary ===\n" +
		"Files processed: 2\n" +
		"Files modified:  1\n" +
		"Files skipped:   1\n" +
		"=========================\n"
	testutil.AssertEqual(t, buf.String(), want)
}

func TestEnsureLicense(t *testing.T) {
	t.Run("existing license kept", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "LICENSE.md"), "custom")
		written, err := EnsureLicense(dir, faculty, 2025)
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, written, false)
	})
	t.Run("apache for faculty", func(t *testing.T) {
		dir := t.TempDir()
		written, err := EnsureLicense(dir, faculty, 2025)
		testutil.AssertEqual(t, err, nil)
		testutil.AssertEqual(t, written, true)
		got := readFile(t, filepath.Join(dir, "LICENSE"))
		if !strings.HasPrefix(got, "Copyright 2025 Oregon State University\n\nLicensed under the Apache License, Version 2.0") {
			t.Errorf("LICENSE = %q", got)
		}
	})
}

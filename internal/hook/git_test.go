// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package hook

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"licer/internal/config"
	"licer/internal/licer"
	"licer/testutil"
)

func TestParseNameStatus(t *testing.T) {
	cases := map[string]struct {
		in   string
		want []string
	}{
		"empty":              {in: "", want: nil},
		"one added":          {in: "A\x00test_new.py\x00", want: []string{"test_new.py"}},
		"mixed":              {in: "M\x00a.go\x00A\x00b.go\x00D\x00c.go\x00A\x00dir/d e.py\x00", want: []string{"b.go", "dir/d e.py"}},
		"rename is skipped":  {in: "R100\x00old.go\x00new.go\x00A\x00x.go\x00", want: []string{"x.go"}},
		"truncated is ended": {in: "A\x00a.go\x00A", want: []string{"a.go"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ParseNameStatus([]byte(tc.in))); diff != "" {
				t.Errorf("ParseNameStatus() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreCommit(t *testing.T) {
	dir := testutil.GitRepo(t)
	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("old.go", "package old\n")
	testutil.Git(t, dir, "add", "old.go")
	testutil.Git(t, dir, "commit", "--quiet", "-m", "initial")

	write("old.go", "package old\n\nvar X = 1\n")
	write("pkg/new.go", "package pkg\n")
	write("notes.md", "# notes\n")
	write("gone.py", "x = 1\n")
	write("vendor/lib.go", thirdParty)
	testutil.Git(t, dir, "add", "old.go", "pkg/new.go", "notes.md", "gone.py", "vendor/lib.go")
	if err := os.Remove(filepath.Join(dir, "gone.py")); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{FullName: "Jane Doe", DefaultRole: config.Student, DeptOrLab: "EECS", Organization: "OSU"}
	g := &Git{Dir: dir}
	results, err := PreCommit(context.Background(), g, licer.Processor{Config: cfg, Year: 2025, Force: true})
	if err != nil {
		t.Fatalf("PreCommit(): %v", err)
	}

	var got []string
	for _, r := range results {
		got = append(got, r.Path+" "+string(r.Action))
	}
	want := []string{"notes.md SKIP", "pkg/new.go ADD", "vendor/lib.go SKIP"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	// The licensed version is what gets committed.
	staged := testutil.Git(t, dir, "show", ":pkg/new.go")
	wantStaged := "// Copyright (c) 2025 Jane Doe\n//\n// SPDX-License-Identifier: MIT\n// See LICENSE file for full license text.\n\npackage pkg\n"
	testutil.AssertEqual(t, staged, wantStaged)

	// Modified files that were already tracked are left alone.
	testutil.AssertEqual(t, testutil.Git(t, dir, "show", ":old.go"), "package old\n\nvar X = 1\n")

	// Force is ignored, so foreign notices survive.
	testutil.AssertEqual(t, testutil.Git(t, dir, "show", ":vendor/lib.go"), thirdParty)
	b, err := os.ReadFile(filepath.Join(dir, "vendor", "lib.go"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), thirdParty)
}

const thirdParty = "// Copyright 2009 The Go Authors.\n// Use of this source code is governed by a BSD-style license.\n\npackage lib\n"

func TestPreCommitRestageFailure(t *testing.T) {
	dir := testutil.GitRepo(t)
	path := filepath.Join(dir, "new.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	testutil.Git(t, dir, "add", "new.go")

	// A stale lock makes every index update fail.
	if err := os.WriteFile(filepath.Join(dir, ".git", "index.lock"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{FullName: "Jane Doe", DefaultRole: config.Student, DeptOrLab: "EECS", Organization: "OSU"}
	results, err := PreCommit(context.Background(), &Git{Dir: dir}, licer.Processor{Config: cfg, Year: 2025})
	if err == nil || !strings.Contains(err.Error(), "re-staging new.go") {
		t.Fatalf("PreCommit() = %v, want a re-staging error", err)
	}
	if len(results) != 1 || results[0].Action != licer.ActionAdd {
		t.Fatalf("results = %+v, want one ADD", results)
	}

	// The file itself was still licensed.
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "SPDX-License-Identifier: MIT") {
		t.Errorf("new.go has no header:\n%s", b)
	}
}

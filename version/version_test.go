// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"strings"
	"testing"

	"licer/testutil"
)

func TestInfoString(t *testing.T) {
	cases := map[string]struct {
		in   Info
		want string
	}{
		"no commit": {
			in:   Info{Name: "licer", Module: "devel", Go: "go1.26.0"},
			want: "licer devel built with go1.26.0\n",
		},
		"long commit is shortened": {
			in:   Info{Name: "licer", Module: "v1.0.0", Commit: "0123456789abcdef", Go: "go1.26.0"},
			want: "licer v1.0.0 (0123456789ab) built with go1.26.0\n",
		},
		"dirty tree": {
			in:   Info{Name: "licer", Module: "devel", Commit: "abc", Dirty: true, Go: "go1.26.0"},
			want: "licer devel (abc, dirty) built with go1.26.0\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.in.String(), tc.want)
		})
	}
}

func TestVersion(t *testing.T) {
	v := Version()
	if v.Name == "" {
		t.Fatal("Version().Name is empty")
	}
	if !strings.HasPrefix(v.Go, "go") && !strings.HasPrefix(v.Go, "devel") {
		t.Fatalf("Version().Go = %q, want a Go toolchain version", v.Go)
	}
}

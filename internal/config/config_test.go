// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"licer/testutil"
)

func TestLoad(t *testing.T) {
	cases := map[string]struct {
		yaml    string
		want    *Config
		wantErr error
	}{
		"faculty": {
			yaml: "FULL_NAME: Dirk Petersen\nDEFAULT_ROLE: Faculty\nDEPT_OR_LAB: UIT/ARCS\nORGANIZATION: Oregon State University\n",
			want: &Config{FullName: "Dirk Petersen", DefaultRole: Faculty, DeptOrLab: "UIT/ARCS", Organization: "Oregon State University"},
		},
		"missing department": {
			yaml:    "FULL_NAME: Jane Doe\nDEFAULT_ROLE: Student\nORGANIZATION: OSU\n",
			wantErr: ErrIncomplete,
		},
		"unknown role": {
			yaml:    "FULL_NAME: Jane Doe\nDEFAULT_ROLE: Dean\nDEPT_OR_LAB: CS\nORGANIZATION: OSU\n",
			wantErr: ErrInvalidRole,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "licer.yml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Load() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(): %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licer.yml")
	if err := os.WriteFile(path, []byte("FULL_NAME: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Fatalf("Load() error = %v, want a parse error", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := Path(t.TempDir())
	want := &Config{FullName: "Jane Doe", DefaultRole: Student, DeptOrLab: "EECS", Organization: DefaultOrganization}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "DEFAULT_ROLE: Student") {
		t.Errorf("saved YAML does not use upper-case keys:\n%s", data)
	}
}

func TestTemplate(t *testing.T) {
	cases := map[string]struct {
		role Role
		want Template
	}{
		"student": {role: Student, want: Template{LicenseType: "MIT", CopyrightOwner: "Jane Doe"}},
		"faculty": {role: Faculty, want: Template{LicenseType: "Apache-2.0", CopyrightOwner: "OSU"}},
		"staff":   {role: Staff, want: Template{LicenseType: "Apache-2.0", CopyrightOwner: "OSU"}},
		"unknown": {role: "Dean", want: Template{LicenseType: "MIT", CopyrightOwner: "Jane Doe"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := &Config{FullName: "Jane Doe", DefaultRole: tc.role, DeptOrLab: "CS", Organization: "OSU"}
			testutil.AssertEqual(t, c.Template(), tc.want)
		})
	}
}

func TestPrompterCreate(t *testing.T) {
	cases := map[string]struct {
		input       string
		defaultName string
		want        *Config
		wantErr     string
		wantOut     string
	}{
		"all answers given": {
			input: "Jane Doe\n1\nEECS\nAcme\n",
			want:  &Config{FullName: "Jane Doe", DefaultRole: Student, DeptOrLab: "EECS", Organization: "Acme"},
		},
		"defaults accepted": {
			input:       "\n2\nUIT/ARCS\n\n",
			defaultName: "Dirk Petersen",
			want:        &Config{FullName: "Dirk Petersen", DefaultRole: Faculty, DeptOrLab: "UIT/ARCS", Organization: DefaultOrganization},
			wantOut:     "Full Name (default: Dirk Petersen): ",
		},
		"role retried": {
			input:   "Jane Doe\n9\nx\n3\nIT\nAcme",
			want:    &Config{FullName: "Jane Doe", DefaultRole: Staff, DeptOrLab: "IT", Organization: "Acme"},
			wantOut: "Please enter 1, 2, or 3\n",
		},
		"name required": {
			input:   "\n",
			wantErr: "full name is required",
		},
		"department required": {
			input:   "Jane Doe\n1\n\n",
			wantErr: "department/lab is required",
		},
		"input ends early": {
			input:   "Jane Doe\n",
			wantErr: "failed to read input",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			p := &Prompter{In: strings.NewReader(tc.input), Out: &out, DefaultName: tc.defaultName}
			got, err := p.Create()
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("Create() error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create(): %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Create() mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(out.String(), tc.wantOut) {
				t.Errorf("prompts = %q, want them to contain %q", out.String(), tc.wantOut)
			}
		})
	}
}

func TestLoadOrCreate(t *testing.T) {
	path := Path(t.TempDir())
	p := &Prompter{In: strings.NewReader("Jane Doe\n1\nEECS\n\n"), Out: new(bytes.Buffer)}

	c, created, err := LoadOrCreate(path, p)
	if err != nil {
		t.Fatalf("LoadOrCreate(): %v", err)
	}
	testutil.AssertEqual(t, created, true)
	testutil.AssertEqual(t, c.FullName, "Jane Doe")

	// The second call reads the saved file and never touches the prompter.
	p.In = strings.NewReader("")
	c, created, err = LoadOrCreate(path, p)
	if err != nil {
		t.Fatalf("LoadOrCreate(): %v", err)
	}
	testutil.AssertEqual(t, created, false)
	testutil.AssertEqual(t, c.Organization, DefaultOrganization)
}

// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package licer adds, replaces and removes license headers in the files of a
// git repository.
package licer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"licer/internal/config"
	"licer/internal/header"
)

// Action is what happened to a file.
type Action string

// Actions reported in a [Result].
const (
	ActionAdd     Action = "ADD"
	ActionReplace Action = "REPLACE"
	ActionRemove  Action = "REMOVE"
	ActionSkip    Action = "SKIP"
)

// Result is the outcome of processing one file.
type Result struct {
	Action   Action
	Reason   string
	Modified bool
	// Err is set when the file could not be read or written.
	Err error
}

func skip(reason string) Result { return Result{Action: ActionSkip, Reason: reason} }

func failed(what string, err error) Result {
	return Result{Action: ActionSkip, Reason: fmt.Sprintf("Error %s: %v", what, err), Err: err}
}

var (
	// ErrForceRemove is returned when forcing and removing are both requested.
	ErrForceRemove = errors.New("--force and --remove cannot be used together")
	// ErrNotRepository is returned for a folder that is not a git work tree.
	ErrNotRepository = errors.New("not a git repository")
)

// Processor applies the configured header to single files.
type Processor struct {
	Config *config.Config
	// Force replaces existing headers and third-party copyright notices.
	Force bool
	// Remove strips headers owned by the configured person or organization
	// instead of adding them.
	Remove bool
	// Year goes into generated headers. The current year when zero.
	Year int
}

// Validate checks that the processor options are consistent.
func (p *Processor) Validate() error {
	if p.Force && p.Remove {
		return ErrForceRemove
	}
	return nil
}

func (p *Processor) year() int {
	if p.Year != 0 {
		return p.Year
	}
	return time.Now().Year()
}

// Process adds, replaces or removes the header of the file at path.
func (p *Processor) Process(path string) Result {
	if header.Excluded(path) {
		return skip("Excluded file type")
	}

	fi, err := os.Stat(path)
	if err != nil {
		return failed("reading file", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return failed("reading file", err)
	}

	style, ok := header.StyleFor(path, content)
	if !ok {
		return skip("Excluded file type")
	}

	lines := strings.Split(string(content), "\n")
	info := Detect(lines, style)

	var (
		out []string
		res Result
	)
	if p.Remove {
		out, res = p.remove(lines, info)
	} else {
		out, res = p.add(lines, info, style)
	}
	if !res.Modified {
		return res
	}

	if err := os.WriteFile(path, []byte(strings.Join(out, "\n")), fi.Mode().Perm()); err != nil {
		return failed("modifying file", err)
	}
	return res
}

func (p *Processor) add(lines []string, info Info, style header.Style) ([]string, Result) {
	if info.HasHeader && !p.Force {
		return nil, skip("Header already exists")
	}
	if info.HasThirdPartyCopyright && !p.Force {
		return nil, skip("Third-party copyright found (use --force to overwrite)")
	}

	license := p.Config.Template().LicenseType
	hdr := strings.Split(header.Format(header.Generate(p.Config, p.year()), style), "\n")

	res := Result{
		Action:   ActionAdd,
		Reason:   fmt.Sprintf("Added %s header", license),
		Modified: true,
	}
	switch {
	case info.HasHeader:
		res.Action = ActionReplace
		res.Reason = fmt.Sprintf("Replaced existing header with %s header", license)
	case info.HasThirdPartyCopyright:
		res.Action = ActionReplace
		res.Reason = fmt.Sprintf("Replaced third-party copyright with %s header", license)
	}

	var out []string
	rest := lines
	if info.HasShebang {
		out = append(out, lines[0])
		rest = lines[1:]
	}
	var prefix []string
	if info.HasHeader || info.HasThirdPartyCopyright {
		prefix = above(lines, info)
		rest = lines[info.EndLine+1:]
	}
	switch {
	case len(prefix) > 0:
		out = append(out, prefix...)
		if strings.TrimSpace(prefix[len(prefix)-1]) != "" {
			out = append(out, "")
		}
	case info.HasShebang:
		out = append(out, "")
	}
	out = append(out, hdr...)
	out = append(out, "")
	out = append(out, trimLeadingBlank(rest)...)
	return out, res
}

func (p *Processor) remove(lines []string, info Info) ([]string, Result) {
	if !info.HasHeader {
		return nil, skip("No header found")
	}
	if !p.owns(lines[info.StartLine : info.EndLine+1]) {
		return nil, skip("Header ownership mismatch (safety check)")
	}

	var out []string
	if info.HasShebang {
		out = append(out, lines[0])
	}
	out = append(out, above(lines, info)...)
	out = append(out, trimLeadingBlank(lines[info.EndLine+1:])...)
	return out, Result{
		Action:   ActionRemove,
		Reason:   "Removed header (ownership match)",
		Modified: true,
	}
}

// owns reports whether a header names the configured person or organization.
func (p *Processor) owns(hdr []string) bool {
	text := strings.Join(hdr, "\n")
	if !hasSPDX(text) {
		return false
	}
	c := p.Config
	return (c.FullName != "" && strings.Contains(text, c.FullName)) ||
		(c.Organization != "" && strings.Contains(text, c.Organization))
}

// above returns the lines between the shebang, if any, and a detected
// header, such as build constraints or encoding declarations. It returns nil
// when they are all blank.
func above(lines []string, info Info) []string {
	first := 0
	if info.HasShebang {
		first = 1
	}
	prefix := lines[first:info.StartLine]
	for _, line := range prefix {
		if strings.TrimSpace(line) != "" {
			return prefix
		}
	}
	return nil
}

// trimLeadingBlank drops blank lines from the start of lines, keeping the
// final empty element that stands for a trailing newline.
func trimLeadingBlank(lines []string) []string {
	for len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 1 && strings.TrimSpace(lines[0]) == "" {
		return nil
	}
	return lines
}

// CheckRepository returns an error wrapping ErrNotRepository unless root is
// the top of a git work tree. A .git file, as used by worktrees and
// submodules, counts too.
func CheckRepository(root string) error {
	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		return fmt.Errorf("%w: %s", ErrNotRepository, root)
	}
	return nil
}

// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style is the comment syntax of a file type.
type Style struct {
	Line       string
	BlockStart string
	BlockEnd   string
}

var (
	slashes = Style{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
	hash    = Style{Line: "#"}
	html    = Style{Line: "<!--", BlockStart: "<!--", BlockEnd: "-->"}
	css     = Style{Line: "/*", BlockStart: "/*", BlockEnd: "*/"}
	lisp    = Style{Line: ";;"}
	haskell = Style{Line: "--", BlockStart: "{-", BlockEnd: "-}"}
	ocaml   = Style{Line: "(*", BlockEnd: "*)"}
	fsharp  = Style{Line: "//", BlockStart: "(*", BlockEnd: "*)"}
	fortran = Style{Line: "!", BlockStart: "!", BlockEnd: "!"}
	erlang  = Style{Line: "%"}
	batch   = Style{Line: "REM"}
	pwsh    = Style{Line: "#", BlockStart: "<#", BlockEnd: "#>"}
)

// styles is keyed by lower-case extension. The empty extension is used for
// extensionless text files, which are assumed to be shell scripts.
var styles = map[string]Style{
	".go": slashes, ".js": slashes, ".mjs": slashes, ".cjs": slashes,
	".ts": slashes, ".tsx": slashes, ".jsx": slashes,
	".scss": slashes, ".sass": slashes, ".less": slashes,
	".java": slashes, ".c": slashes, ".cpp": slashes, ".cc": slashes, ".cxx": slashes,
	".h": slashes, ".hpp": slashes, ".rs": slashes, ".swift": slashes, ".kt": slashes,
	".scala": slashes, ".cs": slashes, ".m": slashes, ".mm": slashes, ".php": slashes,
	".dart": slashes, ".d": slashes, ".v": slashes, ".vv": slashes,
	".zig": {Line: "//"},

	".py": hash, ".sh": hash, ".rb": hash, ".yaml": hash, ".yml": hash,
	".toml": hash, ".ini": hash, ".cfg": hash, ".conf": hash, ".r": hash,
	".pl": hash, ".pm": hash, ".cr": hash, ".ex": hash, ".exs": hash,
	".jl":  {Line: "#", BlockStart: "#=", BlockEnd: "=#"},
	".nim": {Line: "#", BlockStart: "#[", BlockEnd: "]#"},
	"":     hash,

	".html": html, ".htm": html, ".rmd": html,
	".css": css,

	".sql": {Line: "--", BlockStart: "/*", BlockEnd: "*/"},
	".lua": {Line: "--", BlockStart: "--[[", BlockEnd: "--]]"},
	".hs":  haskell, ".lhs": haskell,
	".ml": ocaml, ".mli": ocaml,
	".fs": fsharp, ".fsx": fsharp, ".fsi": fsharp,
	".pas": {Line: "//", BlockStart: "{", BlockEnd: "}"},

	".vim": {Line: `"`}, ".vimrc": {Line: `"`},
	".el": lisp, ".lisp": lisp, ".lsp": lisp, ".clj": lisp, ".cljs": lisp,

	".f":   {Line: "C", BlockStart: "C", BlockEnd: "C"},
	".f90": fortran, ".f95": fortran,
	".erl": erlang, ".hrl": erlang,
	".bat": batch, ".cmd": batch,
	".ps1": pwsh, ".psm1": pwsh,
}

var excludedExts = map[string]bool{
	// Documents and data.
	".md": true, ".txt": true, ".json": true, ".xml": true, ".csv": true,
	".tsv": true, ".log": true, ".out": true, ".pdf": true, ".doc": true,
	".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	// Archives and packages.
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".jar": true, ".war": true, ".ear": true,
	".whl": true, ".egg": true, ".deb": true, ".rpm": true, ".msi": true,
	".dmg": true, ".iso": true, ".img": true,
	// Media.
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".tiff": true, ".svg": true, ".ico": true, ".mp3": true, ".mp4": true,
	".avi": true, ".mov": true, ".mkv": true, ".wav": true, ".flac": true,
	// Binaries.
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".lib": true, ".obj": true, ".o": true, ".class": true, ".pyc": true,
	".pyo": true, ".pyd": true,
}

// excludedNames are extensionless files that are text but never source.
var excludedNames = map[string]bool{
	"LICENSE": true, "LICENCE": true, "COPYING": true, "NOTICE": true,
	"AUTHORS": true, "CODEOWNERS": true,
}

// Ext returns the lower-case extension of path.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Excluded reports whether path can never receive a header, judging by its
// name alone.
func Excluded(path string) bool {
	ext := Ext(path)
	if excludedExts[ext] {
		return true
	}
	if ext == "" && excludedNames[filepath.Base(path)] {
		return true
	}
	_, ok := styles[ext]
	return !ok
}

// StyleFor returns the comment style for path. head is the beginning of the
// file; it decides whether an extensionless file is text. The boolean is false
// when the file must not be processed.
func StyleFor(path string, head []byte) (Style, bool) {
	if Excluded(path) {
		return Style{}, false
	}
	ext := Ext(path)
	if ext == "" && !IsText(head) {
		return Style{}, false
	}
	return styles[ext], true
}

// sniffLen is how much of a file IsText looks at.
const sniffLen = 512

// IsText reports whether data looks like text: no NUL bytes, and at most 30%
// of the first 512 bytes in non-printable characters or invalid UTF-8. Empty
// input is not text.
func IsText(data []byte) bool {
	truncated := len(data) > sniffLen
	if truncated {
		data = data[:sniffLen]
	}
	if len(data) == 0 {
		return false
	}
	var nonPrintable int
	for rest := data; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		switch {
		case r == 0:
			return false
		case r == utf8.RuneError && size == 1:
			// A rune cut off by the sniffing limit is not held against data.
			if !truncated || utf8.FullRune(rest) {
				nonPrintable++
			}
		case !unicode.IsPrint(r) && !unicode.IsSpace(r):
			nonPrintable += size
		}
		rest = rest[size:]
	}
	return float64(nonPrintable)/float64(len(data)) <= 0.30
}

// Format renders header in style s. Blank header lines become a bare comment
// marker. Styles whose line marker opens a block (CSS, HTML) get a single
// block comment, and styles with only a closing marker (OCaml) close every
// line.
func Format(header string, s Style) string {
	lines := strings.Split(header, "\n")
	out := make([]string, 0, len(lines)+2)

	switch {
	case s.Line == "/*" && s.BlockStart == "/*" && s.BlockEnd == "*/":
		out = append(out, "/*")
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				out = append(out, " *")
			} else {
				out = append(out, " * "+line)
			}
		}
		out = append(out, " */")
	case s.Line == s.BlockStart && s.BlockEnd != "" && s.BlockEnd != s.Line:
		out = append(out, s.BlockStart)
		for _, line := range lines {
			out = append(out, strings.TrimRight(line, " "))
		}
		out = append(out, s.BlockEnd)
	case s.BlockStart == "" && s.BlockEnd != "":
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				out = append(out, s.Line+" "+s.BlockEnd)
			} else {
				out = append(out, s.Line+" "+line+" "+s.BlockEnd)
			}
		}
	default:
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				out = append(out, s.Line)
			} else {
				out = append(out, s.Line+" "+line)
			}
		}
	}
	return strings.Join(out, "\n")
}

// IsComment reports whether line, on its own, is a comment in style s.
// Lines inside a multi-line block comment are not recognised here; see
// [Style.Opens] and [Style.Closes].
func (s Style) IsComment(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	return hasMarker(t, s.Line) || hasMarker(t, s.BlockStart) || (s.BlockStart == "/*" && strings.HasPrefix(t, "*"))
}

// Opens reports whether line starts a block comment that it does not also
// close.
func (s Style) Opens(line string) bool {
	if s.BlockStart == "" || s.BlockEnd == "" || s.BlockStart == s.BlockEnd {
		return false
	}
	t := strings.TrimSpace(line)
	if !hasMarker(t, s.BlockStart) {
		return false
	}
	return !strings.Contains(t[len(s.BlockStart):], s.BlockEnd)
}

// Closes reports whether line ends an open block comment.
func (s Style) Closes(line string) bool {
	return s.BlockEnd != "" && strings.Contains(line, s.BlockEnd)
}

// hasMarker reports whether t starts with the comment marker m. Alphabetic
// markers (REM, C) must stand alone as a word.
func hasMarker(t, m string) bool {
	if m == "" || !strings.HasPrefix(t, m) {
		return false
	}
	if !unicode.IsLetter(rune(m[0])) || len(t) == len(m) {
		return true
	}
	return t[len(m)] == ' ' || t[len(m)] == '\t'
}

// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licer

import (
	"strings"

	"licer/internal/header"
)

// maxHeaderScan is how many lines from the top are searched for an SPDX
// identifier.
const maxHeaderScan = 20

// thirdPartyScan is how many lines after an optional shebang are searched for
// a foreign copyright notice.
const thirdPartyScan = 3

// Info describes the license header found at the top of a file. Line numbers
// are 0-based and inclusive; they are -1 when nothing was found.
type Info struct {
	HasHeader              bool
	HasThirdPartyCopyright bool
	HasShebang             bool
	StartLine              int
	EndLine                int
}

// Detect inspects lines, written in comment style s, for a license header.
//
// A comment block holding an SPDX-License-Identifier within the first lines
// is a header. Without one, a comment mentioning copyright right at the top
// is a third-party notice. In both cases the whole contiguous comment block
// around the matching line is reported.
func Detect(lines []string, s header.Style) Info {
	info := Info{StartLine: -1, EndLine: -1}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "#!") {
		info.HasShebang = true
	}
	first := 0
	if info.HasShebang {
		first = 1
	}

	mask := commentMask(lines, s)

	for i := first; i < min(len(lines), maxHeaderScan); i++ {
		if mask[i] && hasSPDX(lines[i]) {
			info.HasHeader = true
			info.StartLine, info.EndLine = blockAround(mask, i, first)
			return info
		}
	}

	for i := first; i < min(len(lines), first+thirdPartyScan); i++ {
		if mask[i] && strings.Contains(strings.ToLower(lines[i]), "copyright") {
			info.HasThirdPartyCopyright = true
			info.StartLine, info.EndLine = blockAround(mask, i, first)
			return info
		}
	}

	return info
}

func hasSPDX(line string) bool {
	return strings.Contains(strings.ToLower(line), "spdx-license-identifier")
}

// commentMask marks every line that is part of a comment, following block
// comments across lines.
func commentMask(lines []string, s header.Style) []bool {
	mask := make([]bool, len(lines))
	inBlock := false
	for i, line := range lines {
		switch {
		case inBlock:
			mask[i] = true
			inBlock = !s.Closes(line)
		case s.Opens(line):
			mask[i] = true
			inBlock = true
		default:
			mask[i] = s.IsComment(line)
		}
	}
	return mask
}

// blockAround returns the bounds of the run of comment lines containing i,
// never extending above first.
func blockAround(mask []bool, i, first int) (start, end int) {
	start, end = i, i
	for start-1 >= first && mask[start-1] {
		start--
	}
	for end+1 < len(mask) && mask[end+1] {
		end++
	}
	return start, end
}

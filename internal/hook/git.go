// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package hook

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git runs git commands in a work tree.
type Git struct {
	// Dir is the work tree. The current directory when empty.
	Dir string
}

func (g *Git) run(ctx context.Context, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// StagedNewFiles returns the paths, relative to the work tree, of files added
// in the index.
func (g *Git) StagedNewFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "diff", "--cached", "--name-status", "-z", "--diff-filter=A")
	if err != nil {
		return nil, fmt.Errorf("failed to get staged files: %w", err)
	}
	return ParseNameStatus(out), nil
}

// Add stages path.
func (g *Git) Add(ctx context.Context, path string) error {
	_, err := g.run(ctx, "add", "--", path)
	return err
}

// ParseNameStatus returns the added files listed in the NUL-separated output
// of git diff --name-status -z. Entries with other statuses are skipped;
// renames and copies carry two paths.
func ParseNameStatus(out []byte) []string {
	fields := strings.Split(strings.TrimSuffix(string(out), "\x00"), "\x00")
	var added []string
	for i := 0; i < len(fields); i++ {
		status := fields[i]
		if status == "" {
			continue
		}
		paths := 1
		if status[0] == 'R' || status[0] == 'C' {
			paths = 2
		}
		if i+paths >= len(fields) {
			break
		}
		if status == "A" {
			added = append(added, fields[i+1])
		}
		i += paths
	}
	return added
}

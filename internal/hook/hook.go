// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package hook installs licer as a git pre-commit hook and implements the
// hook's behavior: licensing files that are newly added in the commit.
package hook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Marker identifies a hook script written by licer.
const Marker = "licer --pre-commit"

// Script is the pre-commit hook. It looks for licer on PATH, then next to the
// repository, and never blocks a commit when licer is missing.
const Script = `#!/bin/sh
#
# Installed by ` + Marker + `: adds license headers to newly added files.

LICER_PATH="$(command -v licer)"
if [ -z "$LICER_PATH" ]; then
    REPO_ROOT="$(git rev-parse --show-toplevel)"
    for path in "./licer" "../licer" "$REPO_ROOT/licer"; do
        if [ -x "$path" ]; then
            LICER_PATH="$path"
            break
        fi
    done
fi

if [ -z "$LICER_PATH" ]; then
    echo "Warning: licer not found, skipping header check" >&2
    exit 0
fi

exec "$LICER_PATH" --pre-commit --verbose=false
`

func hooksDir(root string) string { return filepath.Join(root, ".git", "hooks") }

// Path returns the location of the pre-commit hook in the repository at root.
func Path(root string) string { return filepath.Join(hooksDir(root), "pre-commit") }

func backupPath(root string) string { return Path(root) + ".backup" }

// IsInstalled reports whether the pre-commit hook at root is an executable
// licer hook.
func IsInstalled(root string) bool {
	fi, err := os.Stat(Path(root))
	if err != nil || fi.Mode()&0o111 == 0 {
		return false
	}
	content, err := os.ReadFile(Path(root))
	if err != nil {
		return false
	}
	return strings.Contains(string(content), Marker)
}

// Install writes the hook. A foreign hook already in place is moved to
// pre-commit.backup first; it reports whether that happened.
func Install(root string) (backedUp bool, err error) {
	if err := os.MkdirAll(hooksDir(root), 0o755); err != nil {
		return false, fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hook := Path(root)
	_, err = os.Stat(hook)
	switch {
	case err == nil && !IsInstalled(root):
		if err := os.Rename(hook, backupPath(root)); err != nil {
			return false, fmt.Errorf("failed to backup existing hook: %w", err)
		}
		backedUp = true
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	if err := os.WriteFile(hook, []byte(Script), 0o755); err != nil {
		return backedUp, fmt.Errorf("failed to write hook script: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(hook, 0o755); err != nil {
		return backedUp, err
	}
	return backedUp, nil
}

// Uninstall removes the licer hook and restores a backed up hook. It does
// nothing when no licer hook is installed and reports whether a hook was
// removed and whether a backup was restored.
func Uninstall(root string) (removed, restored bool, err error) {
	if !IsInstalled(root) {
		return false, false, nil
	}
	if err := os.Remove(Path(root)); err != nil {
		return false, false, fmt.Errorf("failed to remove hook: %w", err)
	}
	if _, err := os.Stat(backupPath(root)); err == nil {
		if err := os.Rename(backupPath(root), Path(root)); err != nil {
			return true, false, fmt.Errorf("failed to restore backup hook: %w", err)
		}
		restored = true
	}
	return true, restored, nil
}

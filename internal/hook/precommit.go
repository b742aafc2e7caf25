// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package hook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"licer/internal/licer"
	"licer/logger"
)

// PreCommit licenses the files newly staged in the work tree of g and stages
// them again when they changed. It never replaces existing headers. A failure
// to re-stage a file does not stop the others but makes PreCommit fail.
func PreCommit(ctx context.Context, g *Git, p licer.Processor) ([]licer.FileResult, error) {
	p.Force = false
	p.Remove = false

	files, err := g.StagedNewFiles(ctx)
	if err != nil {
		return nil, err
	}

	var (
		results []licer.FileResult
		errs    []error
	)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		path := filepath.Join(g.Dir, filepath.FromSlash(name))
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			// Deleted from the work tree after staging.
			continue
		}

		res := p.Process(path)
		results = append(results, licer.FileResult{Path: name, Result: res})
		if res.Err != nil {
			logger.Warn(ctx, "cannot license staged file", logger.PathAttr(name), logger.ErrAttr(res.Err))
		}
		if !res.Modified {
			continue
		}
		if err := g.Add(ctx, name); err != nil {
			logger.Error(ctx, "cannot re-stage file", logger.PathAttr(name), logger.ErrAttr(err))
			errs = append(errs, fmt.Errorf("re-staging %s: %w", name, err))
		}
	}
	return results, errors.Join(errs...)
}

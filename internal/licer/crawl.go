// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licer

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/go4org/hashtriemap"

	"licer/logger"
	"licer/syncx"
)

// DefaultWorkers is the number of files processed concurrently by default.
const DefaultWorkers = 10

// FileResult is a [Result] for a path relative to the crawled root.
type FileResult struct {
	Path string
	Result
}

// Stats counts the outcomes of a run.
type Stats struct {
	Processed int64
	Modified  int64
	Skipped   int64
	Errored   int64
}

// Summary is the outcome of a crawl.
type Summary struct {
	Root  string
	Files []FileResult // sorted by Path
	Stats Stats
	// License is set when a LICENSE file was created.
	License bool
}

// Crawler processes every file in a repository.
type Crawler struct {
	Processor *Processor
	// Workers bounds the number of files processed at once. DefaultWorkers
	// when zero.
	Workers int
}

// Run walks root, skipping .git directories and anything that is not a
// regular file, and processes each file. Unreadable directories are logged
// and skipped. Run stops early when ctx is done.
func (c *Crawler) Run(ctx context.Context, root string) (*Summary, error) {
	if err := c.Processor.Validate(); err != nil {
		return nil, err
	}

	sum := &Summary{Root: root}
	if !c.Processor.Remove {
		written, err := EnsureLicense(root, c.Processor.Config, c.Processor.year())
		if err != nil {
			logger.Warn(ctx, "cannot manage LICENSE file", logger.ErrAttr(err))
		}
		sum.License = written
	}

	var (
		results hashtriemap.HashTrieMap[string, Result]
		stats   struct{ processed, modified, skipped, errored atomic.Int64 }
	)
	workers := c.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	lwg := syncx.NewLimitedWaitGroup(workers)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil || path == root {
				return err
			}
			logger.Warn(ctx, "cannot read directory", logger.PathAttr(path), logger.ErrAttr(err))
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return lwg.GoContext(ctx, func() {
			res := c.Processor.Process(path)
			results.Store(filepath.ToSlash(rel), res)

			stats.processed.Add(1)
			switch {
			case res.Err != nil:
				stats.errored.Add(1)
				logger.Debug(ctx, "processing failed", logger.PathAttr(rel), logger.ErrAttr(res.Err))
			case res.Modified:
				stats.modified.Add(1)
			case res.Action == ActionSkip:
				stats.skipped.Add(1)
			}
		})
	})
	lwg.Wait()
	if walkErr != nil {
		return nil, fmt.Errorf("failed to process repository: %w", walkErr)
	}

	results.Range(func(path string, res Result) bool {
		sum.Files = append(sum.Files, FileResult{Path: path, Result: res})
		return true
	})
	slices.SortFunc(sum.Files, func(a, b FileResult) int { return cmp.Compare(a.Path, b.Path) })
	sum.Stats = Stats{
		Processed: stats.processed.Load(),
		Modified:  stats.modified.Load(),
		Skipped:   stats.skipped.Load(),
		Errored:   stats.errored.Load(),
	}
	return sum, nil
}

// PrintResults writes one line per file in the form "[ACTION] path - reason".
func (s *Summary) PrintResults(w io.Writer) {
	for _, f := range s.Files {
		fmt.Fprintf(w, "[%s] %s - %s\n", f.Action, f.Path, f.Reason)
	}
}

// PrintStats writes the totals of the run.
func (s *Summary) PrintStats(w io.Writer) {
	fmt.Fprintf(w, "\n=== Processing Summary ===\n")
	fmt.Fprintf(w, "Files processed: %d\n", s.Stats.Processed)
	fmt.Fprintf(w, "Files modified:  %d\n", s.Stats.Modified)
	fmt.Fprintf(w, "Files skipped:   %d\n", s.Stats.Skipped)
	if s.Stats.Errored > 0 {
		fmt.Fprintf(w, "Files errored:   %d\n", s.Stats.Errored)
	}
	fmt.Fprintf(w, "=========================\n")
}

// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package report renders the outcome of a licer run as an HTML page.
package report

//go:generate go tool templ generate

import (
	"context"
	"fmt"
	"os"

	"licer/internal/licer"
)

// WriteFile renders sum into the file at path.
func WriteFile(ctx context.Context, path string, sum *licer.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := Page(sum).Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render report: %w", err)
	}
	return f.Close()
}

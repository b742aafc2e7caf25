// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Newfile is a fixture for the licer pre-commit hook: a new file with nothing
// but a function returning a constant.
package main

import (
	"context"
	"fmt"

	"licer/cli"
)

func main() { cli.Main(cli.AppFunc(run)) }

func run(ctx context.Context) error {
	_, err := fmt.Fprintln(cli.GetEnv(ctx).Stdout, newFunction())
	return err
}

func newFunction() string {
	return "This is a new file for testing pre-commit hook"
}

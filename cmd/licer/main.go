// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"licer/cli"
	"licer/internal/config"
	"licer/internal/hook"
	"licer/internal/licer"
	"licer/internal/report"
	"licer/logger"
)

func main() { cli.Main(new(app)) }

var errNoConfig = errors.New("configuration not found")

type app struct {
	gitFolder  string
	configPath string
	force      bool
	remove     bool
	hook       bool
	preCommit  bool
	verbose    bool
	workers    int
	report     string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.gitFolder, "git-folder", "", "Path to git repository (default: current directory).")
	fs.StringVar(&a.configPath, "config", "", "Path to the configuration `file` (default: ~/.config/licer.yml).")
	fs.BoolVar(&a.force, "force", false, "Force replacement of existing headers.")
	fs.BoolVar(&a.remove, "remove", false, "Remove existing headers (requires SPDX-License-Identifier and ownership match).")
	fs.BoolVar(&a.hook, "hook", false, "Install (or with -remove, uninstall) the git pre-commit hook.")
	fs.BoolVar(&a.preCommit, "pre-commit", false, "Pre-commit mode: process only newly staged files.")
	fs.BoolVar(&a.verbose, "verbose", true, "Verbose output.")
	fs.IntVar(&a.workers, "workers", licer.DefaultWorkers, "Number of files processed concurrently.")
	fs.StringVar(&a.report, "report", "", "Write an HTML report of the run to `file`.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.force && a.remove {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, licer.ErrForceRemove)
	}
	if a.workers < 1 {
		return fmt.Errorf("%w: -workers must be at least 1", cli.ErrInvalidArgs)
	}
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrInvalidArgs, env.Args)
	}
	if !a.verbose {
		logger.LevelVar(ctx).Set(slog.LevelWarn)
	}

	root, err := a.root()
	if err != nil {
		return err
	}
	if err := licer.CheckRepository(root); err != nil {
		return err
	}

	switch {
	case a.hook:
		return a.manageHook(env, root)
	case a.preCommit:
		return a.runPreCommit(ctx, env, root)
	}
	return a.runCrawl(ctx, env, root)
}

func (a *app) root() (string, error) {
	dir := a.gitFolder
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

func (a *app) printf(env *cli.Env, format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(env.Stdout, format, args...)
	}
}

func (a *app) config() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return config.Path(home), nil
}

func (a *app) manageHook(env *cli.Env, root string) error {
	if a.remove {
		removed, restored, err := hook.Uninstall(root)
		if err != nil {
			return fmt.Errorf("failed to uninstall hook: %w", err)
		}
		switch {
		case !removed:
			a.printf(env, "No licer pre-commit hook found to uninstall\n")
		case restored:
			a.printf(env, "Restored backed up pre-commit hook\n")
			fallthrough
		default:
			a.printf(env, "Pre-commit hook uninstalled successfully\n")
		}
		return nil
	}

	backedUp, err := hook.Install(root)
	if err != nil {
		return fmt.Errorf("failed to install hook: %w", err)
	}
	if backedUp {
		a.printf(env, "Backed up existing pre-commit hook to pre-commit.backup\n")
	}
	a.printf(env, "Pre-commit hook installed at %s\n", hook.Path(root))
	return nil
}

func (a *app) runPreCommit(ctx context.Context, env *cli.Env, root string) error {
	path, err := a.config()
	if err != nil {
		return err
	}
	// Hooks have no terminal to answer prompts on.
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w at %s, run licer once interactively to create it", errNoConfig, path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	results, err := hook.PreCommit(ctx, &hook.Git{Dir: root}, licer.Processor{Config: cfg})
	if a.verbose {
		(&licer.Summary{Files: results}).PrintResults(env.Stdout)
	}
	return err
}

func (a *app) runCrawl(ctx context.Context, env *cli.Env, root string) error {
	a.printf(env, "Licer - License Header Management Tool\n")
	a.printf(env, "Working in git repository: %s\n", root)
	a.printf(env, "Force mode: %v\n", a.force)
	a.printf(env, "Remove mode: %v\n", a.remove)
	a.printf(env, "Verbose mode: %v\n\n", a.verbose)

	path, err := a.config()
	if err != nil {
		return err
	}
	in := bufio.NewReader(env.Stdin)
	cfg, created, err := config.LoadOrCreate(path, &config.Prompter{
		In:          in,
		Out:         env.Stdout,
		DefaultName: config.GitUserName(ctx),
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if created {
		fmt.Fprintf(env.Stdout, "Configuration saved to %s\n", path)
	}

	tmpl := cfg.Template()
	a.printf(env, "Configuration:\n")
	a.printf(env, "  Name: %s\n", cfg.FullName)
	a.printf(env, "  Role: %s\n", cfg.DefaultRole)
	a.printf(env, "  Department/Lab: %s\n", cfg.DeptOrLab)
	a.printf(env, "  Organization: %s\n", cfg.Organization)
	a.printf(env, "  License: %s\n", tmpl.LicenseType)
	a.printf(env, "  Copyright Owner: %s\n\n", tmpl.CopyrightOwner)

	if a.gitFolder == "" && env.Interactive() && !hook.IsInstalled(root) && confirm(env, in) {
		if _, err := hook.Install(root); err != nil {
			logger.Warn(ctx, "failed to install hook", logger.ErrAttr(err))
		} else {
			a.printf(env, "Pre-commit hook installed at %s\n", hook.Path(root))
		}
	}

	c := &licer.Crawler{
		Processor: &licer.Processor{
			Config: cfg,
			Force:  a.force,
			Remove: a.remove,
			Year:   time.Now().Year(),
		},
		Workers: a.workers,
	}
	a.printf(env, "Starting parallel processing of repository: %s\n", root)
	sum, err := c.Run(ctx, root)
	if err != nil {
		return err
	}
	if sum.License {
		logger.Info(ctx, "created LICENSE file", slog.String("license", tmpl.LicenseType))
	}
	if a.verbose {
		sum.PrintResults(env.Stdout)
		sum.PrintStats(env.Stdout)
	}

	if a.report != "" {
		if err := report.WriteFile(ctx, a.report, sum); err != nil {
			return err
		}
		logger.Info(ctx, "report written", logger.PathAttr(a.report))
	}

	a.printf(env, "Processing completed successfully!\n")
	return nil
}

func confirm(env *cli.Env, in *bufio.Reader) bool {
	fmt.Fprint(env.Stdout, "Install pre-commit hook to automatically license new files? (y/N): ")
	answer, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

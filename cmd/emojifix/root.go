// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/emojifix/pkg/config"
	"github.com/walteh/emojifix/pkg/log"
	"github.com/walteh/emojifix/pkg/operation"
	"github.com/walteh/emojifix/pkg/status"
	"github.com/walteh/emojifix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the command line flags
type rootOpts struct {
	configFile string
	root       string
	matcher    string
	ignore     []string
	dryRun     bool
	backup     bool
	diff       bool
	debug      bool
}

// newRootCmd builds the emojifix command
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "emojifix",
		Short: "Insert missing emoji into floating contact-button links",
		Long: `emojifix walks every .html file under the current directory and repairs
the href of floating contact buttons:

  whatsapp-floating, sms-floating  ->  💬
  tlp-floating                     ->  📞

The emoji goes right before the first '-' of the last path segment and is
only added when it is missing. Files that fail to read or write are reported
and skipped.`,
		Args:          cobra.NoArgs,
		Version:       GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(FormatVersion())

	addRootFlags(cmd, opts)
	return cmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "optional config file (.yaml, .hcl or .json)")
	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "directory to walk (default: current directory)")
	cmd.Flags().StringVar(&opts.matcher, "matcher", "", `link matcher: "tag" or "regex" (default "tag")`)
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "glob patterns of files to skip")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report corrections without writing files")
	cmd.Flags().BoolVar(&opts.backup, "backup", false, "keep a .bak copy of every corrected file")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print every inserted emoji with context")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// loadConfig reads the config file, if any, and applies flags on top
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *rootOpts) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(ctx, opts.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("matcher") {
		cfg.Matcher = opts.matcher
	}
	if flags.Changed("ignore") {
		cfg.Ignore = opts.ignore
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}
	if flags.Changed("backup") {
		cfg.Backup = opts.backup
	}
	if flags.Changed("diff") {
		cfg.Diff = opts.diff
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// run executes one correction pass. Per-file failures are reported in the
// output and do not make it return an error.
func run(cmd *cobra.Command, opts *rootOpts, stdout, stderr io.Writer) error {
	zlog := setupLogging(stderr, opts.debug)
	ctx := zlog.WithContext(cmd.Context())

	cfg, err := loadConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}
	zlog.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return errors.Errorf("getting absolute root path: %w", err)
	}

	matcher, err := text.NewMatcher(cfg.Matcher)
	if err != nil {
		return errors.Errorf("creating matcher: %w", err)
	}

	console := log.New(stdout, zlog)

	console.Header("Starting emoji correction...")
	console.Directory(absRoot)

	walker, err := operation.NewWalker(operation.Options{
		Root:      absRoot,
		Include:   cfg.Include,
		Ignore:    cfg.Ignore,
		DryRun:    cfg.DryRun,
		Backup:    cfg.Backup,
		Diff:      cfg.Diff,
		Corrector: text.NewCorrector(text.WithMatcher(matcher)),
		Files:     status.New(absRoot, &zlog),
		Logger:    console,
	})
	if err != nil {
		return errors.Errorf("creating walker: %w", err)
	}

	summary, err := walker.Run(ctx)
	if err != nil {
		return errors.Errorf("running correction: %w", err)
	}

	for _, failed := range summary.Failed {
		zlog.Debug().Str("file", failed.Path).Err(failed.Error).Msg("file skipped")
	}
	return nil
}

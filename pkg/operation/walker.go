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

package operation

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/emojifix/pkg/log"
	"github.com/walteh/emojifix/pkg/status"
	"github.com/walteh/emojifix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ✏️ Corrector rewrites one document
type Corrector interface {
	Correct(ctx context.Context, content string) (*text.Result, error)
}

// 🔧 Options contains configuration for the walker
type Options struct {
	Root    string   // Directory to walk
	Include string   // doublestar pattern selecting files, relative to Root
	Ignore  []string // doublestar patterns of files to skip
	DryRun  bool     // Report corrections without writing
	Backup  bool     // Keep a .bak copy before writing
	Diff    bool     // Print a diff of every correction

	Corrector Corrector
	Files     status.FileManager
	Logger    *log.Logger
}

// 📊 Summary accumulates the outcome of one run
type Summary struct {
	Files      []status.FileInfo
	Modified   int // Files written (or that would be written in a dry run)
	Unchanged  int
	Failed     []status.FileInfo
	Insertions int
}

// Checked returns how many files were looked at.
func (s *Summary) Checked() int {
	return len(s.Files)
}

func (s *Summary) add(info status.FileInfo) {
	s.Files = append(s.Files, info)
	switch info.Status {
	case status.StatusCorrected, status.StatusWouldCorrect:
		s.Modified++
		s.Insertions += info.Insertions
	case status.StatusFailed:
		s.Failed = append(s.Failed, info)
	default:
		s.Unchanged++
	}
}

// 🚶 Walker finds html files and corrects them one at a time
type Walker struct {
	opts Options
}

// 🏭 NewWalker creates a new walker with the given options
func NewWalker(opts Options) (*Walker, error) {
	if opts.Corrector == nil {
		return nil, errors.Errorf("corrector is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Include == "" {
		opts.Include = "**/*.html"
	}
	return &Walker{opts: opts}, nil
}

// 🔍 Discover lists every matching file under the root, minus ignored ones
func (w *Walker) Discover(ctx context.Context) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(w.opts.Root), w.opts.Include, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("globbing %q: %w", w.opts.Include, err)
	}

	files := make([]string, 0, len(matches))
	for _, path := range matches {
		if w.isIgnored(ctx, path) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func (w *Walker) isIgnored(ctx context.Context, path string) bool {
	for _, pattern := range w.opts.Ignore {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 🏃 Run discovers files, corrects them in order and reports a summary.
// Per-file failures are recorded in the summary and never stop the run.
func (w *Walker) Run(ctx context.Context) (*Summary, error) {
	files, err := w.Discover(ctx)
	if err != nil {
		return nil, err
	}
	w.opts.Logger.FileList(files)

	summary := &Summary{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, errors.Errorf("run cancelled: %w", err)
		}
		summary.add(w.ProcessFile(ctx, path))
	}

	w.opts.Logger.Summary(summary.Modified, summary.Unchanged, len(summary.Failed), summary.Insertions, w.opts.DryRun)
	return summary, nil
}

// 📄 ProcessFile corrects a single file and logs the outcome
func (w *Walker) ProcessFile(ctx context.Context, path string) status.FileInfo {
	w.opts.Logger.Checking(path)

	info, err := w.processFile(ctx, path)
	if err != nil {
		info = status.FileInfo{Path: path, Status: status.StatusFailed, Error: err}
	}

	w.opts.Logger.LogFileOperation(ctx, info)
	return info
}

func (w *Walker) processFile(ctx context.Context, path string) (status.FileInfo, error) {
	info := status.FileInfo{Path: path, Status: status.StatusUnchanged}

	content, err := w.opts.Files.ReadFile(ctx, path)
	if err != nil {
		return info, err
	}

	result, err := w.opts.Corrector.Correct(ctx, content)
	if err != nil {
		return info, errors.Errorf("correcting: %w", err)
	}

	for _, warning := range result.Warnings {
		w.opts.Logger.Warningf("%s: %s", path, warning)
	}

	if !result.WasModified {
		return info, nil
	}
	info.Insertions = result.InsertionCount

	if w.opts.Diff {
		w.opts.Logger.Diff(path, renderDiff(result.OriginalContent, result.ModifiedContent))
	}

	if w.opts.DryRun {
		info.Status = status.StatusWouldCorrect
		return info, nil
	}

	if w.opts.Backup {
		if err := w.opts.Files.BackupFile(ctx, path); err != nil {
			return info, err
		}
	}

	if err := w.opts.Files.WriteFileAtomic(ctx, path, result.ModifiedContent); err != nil {
		return info, err
	}

	info.Status = status.StatusCorrected
	return info, nil
}

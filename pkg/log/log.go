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

package log

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/emojifix/pkg/status"
)

// 🎯 Logger prints the user-facing progress of a run and mirrors it to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 📝 Header logs the startup banner
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("emojifix")
	fmt.Fprintf(l.console, "%s %s\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Directory logs the directory being walked
func (l *Logger) Directory(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "Current directory: %s\n", color.CyanString(dir))
	l.zlog.Info().Str("dir", dir).Msg("current directory")
}

// 📝 FileList logs every file that is about to be checked
func (l *Logger) FileList(paths []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "Files found: %d\n", len(paths))
	if len(paths) > 0 {
		items := make([]pterm.BulletListItem, len(paths))
		for i, p := range paths {
			items[i] = pterm.BulletListItem{Level: 2, Text: p}
		}
		_ = pterm.DefaultBulletList.WithWriter(l.console).WithItems(items).Render()
	}
	l.zlog.Info().Strs("files", paths).Msg("files found")
}

// 📝 Checking logs that a file is about to be processed
func (l *Logger) Checking(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, l.formatter.FormatChecking(path))
	l.zlog.Debug().Str("file", path).Msg("checking file")
}

// 📝 LogFileOperation logs the outcome for one file
func (l *Logger) LogFileOperation(ctx context.Context, info status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := l.formatter.FormatFileOperation(info)
	switch info.Status {
	case status.StatusCorrected, status.StatusWouldCorrect:
		fmt.Fprintln(l.console, color.GreenString(line))
	case status.StatusFailed:
		fmt.Fprintln(l.console, color.RedString(line))
	default:
		fmt.Fprintln(l.console, line)
	}

	ev := l.zlog.Info()
	if info.Error != nil {
		ev = l.zlog.Error().Err(info.Error)
	}
	ev.Str("file", info.Path).
		Str("status", info.Status.String()).
		Int("insertions", info.Insertions).
		Msg("file operation")
}

// 📝 Diff logs a rendered diff for a file
func (l *Logger) Diff(path, diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s\n%s\n", color.New(color.Faint).Sprint("--- "+path), diff)
}

// 📝 Summary logs the closing line and a table of counts
func (l *Logger) Summary(modified, unchanged, failed, insertions int, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n%s\n", l.formatter.FormatSummary(modified, dryRun))

	data := pterm.TableData{
		{"modified", "unchanged", "failed", "emoji inserted"},
		{strconv.Itoa(modified), strconv.Itoa(unchanged), strconv.Itoa(failed), strconv.Itoa(insertions)},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithWriter(l.console).WithData(data).Render()

	l.zlog.Info().
		Int("modified", modified).
		Int("unchanged", unchanged).
		Int("failed", failed).
		Int("insertions", insertions).
		Bool("dry_run", dryRun).
		Msg("operation complete")
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/emojifix/pkg/status"
)

func plainOutput(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})
}

func TestLogger(t *testing.T) {
	plainOutput(t)

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("Starting emoji correction...")
			},
			wantLogs: []string{
				"emojifix • Starting emoji correction...",
			},
		},
		{
			name: "log_directory",
			op: func(t *testing.T, logger *Logger) {
				logger.Directory("/srv/site")
			},
			wantLogs: []string{
				"Current directory: /srv/site",
			},
		},
		{
			name: "log_file_outcomes",
			op: func(t *testing.T, logger *Logger) {
				logger.Checking("index.html")
				logger.LogFileOperation(context.Background(), status.FileInfo{Path: "index.html", Status: status.StatusCorrected, Insertions: 1})
				logger.Checking("about.html")
				logger.LogFileOperation(context.Background(), status.FileInfo{Path: "about.html", Status: status.StatusUnchanged})
				logger.Checking("bad.html")
				logger.LogFileOperation(context.Background(), status.FileInfo{Path: "bad.html", Status: status.StatusFailed, Error: errors.New("boom")})
			},
			wantLogs: []string{
				"Checking file: index.html",
				"✓ Corrected emojis in index.html",
				"Checking file: about.html",
				"No corrections needed in about.html",
				"Checking file: bad.html",
				"Error processing bad.html: boom",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Errorf("error %s", "test")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"❌ error test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLogger_FileList(t *testing.T) {
	plainOutput(t)

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())
	logger.FileList([]string{"index.html", "blog/post.html"})

	output := buf.String()
	assert.Contains(t, output, "Files found: 2")
	assert.Contains(t, output, "• index.html")
	assert.Contains(t, output, "• blog/post.html")
}

func TestLogger_FileList_Empty(t *testing.T) {
	plainOutput(t)

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())
	logger.FileList(nil)

	assert.Equal(t, "Files found: 0\n", buf.String())
}

func TestLogger_Summary(t *testing.T) {
	plainOutput(t)

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop())
	logger.Summary(2, 5, 1, 3, false)

	output := buf.String()
	assert.Contains(t, output, "Operation complete. Modified 2 files.")
	assert.Contains(t, output, "emoji inserted")
}

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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/emojifix/pkg/log"
	"github.com/walteh/emojifix/pkg/status"
	"github.com/walteh/emojifix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	chatPage    = `<a class="whatsapp-floating" href="https://wa.me/34600000000-hola">chat</a>`
	chatFixed   = `<a class="whatsapp-floating" href="https://wa.me/34600000000💬-hola">chat</a>`
	phonePage   = `<a class="tlp-floating" href="https://example.com/call-5551234">call</a>`
	phoneFixed  = `<a class="tlp-floating" href="https://example.com/call📞-5551234">call</a>`
	footerPage  = `<a class="footer-link" href="https://example.com/about-us">about</a>`
	invalidUTF8 = "<a class=\"tlp-floating\" href=\"https://example.com/\xff-1\">"
)

// 🧪 createTestEnv creates a test environment
func createTestEnv(t *testing.T, files map[string]string) (context.Context, string, *bytes.Buffer, *log.Logger) {
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	buf := &bytes.Buffer{}
	return ctx, root, buf, log.New(buf, zlog)
}

func newTestWalker(t *testing.T, root string, logger *log.Logger, mod func(*Options)) *Walker {
	logr := zerolog.New(zerolog.NewTestWriter(t))
	opts := Options{
		Root:      root,
		Corrector: text.NewCorrector(),
		Files:     status.New(root, &logr),
		Logger:    logger,
	}
	if mod != nil {
		mod(&opts)
	}
	w, err := NewWalker(opts)
	require.NoError(t, err)
	return w
}

func readFile(t *testing.T, root, name string) string {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestWalker_Run(t *testing.T) {
	ctx, root, buf, logger := createTestEnv(t, map[string]string{
		"index.html":         chatPage,
		"contact/index.html": phonePage,
		"about.html":         footerPage,
		"notes.txt":          chatPage,
	})

	summary, err := newTestWalker(t, root, logger, nil).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Checked(), "only html files should be checked")
	assert.Equal(t, 2, summary.Modified, "two files should be modified")
	assert.Equal(t, 1, summary.Unchanged, "one file should be unchanged")
	assert.Empty(t, summary.Failed, "no file should fail")
	assert.Equal(t, 2, summary.Insertions, "two emoji should be inserted")

	assert.Equal(t, chatFixed, readFile(t, root, "index.html"))
	assert.Equal(t, phoneFixed, readFile(t, root, "contact/index.html"))
	assert.Equal(t, footerPage, readFile(t, root, "about.html"))
	assert.Equal(t, chatPage, readFile(t, root, "notes.txt"), "non-html files should be untouched")

	output := buf.String()
	assert.Contains(t, output, "Files found: 3")
	assert.Contains(t, output, "Checking file: contact/index.html")
	assert.Contains(t, output, "✓ Corrected emojis in index.html")
	assert.Contains(t, output, "No corrections needed in about.html")
	assert.Contains(t, output, "Operation complete. Modified 2 files.")
}

func TestWalker_Run_SecondPassIsNoop(t *testing.T) {
	ctx, root, _, logger := createTestEnv(t, map[string]string{
		"index.html": chatPage + "\n" + phonePage,
	})

	first, err := newTestWalker(t, root, logger, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Modified)

	second, err := newTestWalker(t, root, logger, nil).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Modified, "second run should not modify anything")
	assert.Equal(t, chatFixed+"\n"+phoneFixed, readFile(t, root, "index.html"))
}

func TestWalker_Run_BatchResilience(t *testing.T) {
	ctx, root, buf, logger := createTestEnv(t, map[string]string{
		"a.html": chatPage,
		"b.html": invalidUTF8,
		"c.html": phonePage,
	})

	summary, err := newTestWalker(t, root, logger, nil).Run(ctx)
	require.NoError(t, err, "a single bad file must not fail the run")

	assert.Equal(t, 3, summary.Checked())
	assert.Equal(t, 2, summary.Modified, "the failed file must not be counted")
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "b.html", summary.Failed[0].Path)
	assert.True(t, errors.Is(summary.Failed[0].Error, status.ErrInvalidUTF8))

	assert.Equal(t, chatFixed, readFile(t, root, "a.html"))
	assert.Equal(t, invalidUTF8, readFile(t, root, "b.html"))
	assert.Equal(t, phoneFixed, readFile(t, root, "c.html"))

	assert.Contains(t, buf.String(), "Error processing b.html: invalid UTF-8")
	assert.Contains(t, buf.String(), "Operation complete. Modified 2 files.")
}

func TestWalker_Run_DryRun(t *testing.T) {
	ctx, root, buf, logger := createTestEnv(t, map[string]string{
		"index.html": chatPage,
	})

	summary, err := newTestWalker(t, root, logger, func(o *Options) {
		o.DryRun = true
		o.Diff = true
	}).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Modified)
	assert.Equal(t, status.StatusWouldCorrect, summary.Files[0].Status)
	assert.Equal(t, chatPage, readFile(t, root, "index.html"), "dry run must not write")

	output := buf.String()
	assert.Contains(t, output, "✓ Would correct emojis in index.html")
	assert.Contains(t, output, "[+💬]")
	assert.Contains(t, output, "Operation complete. Would modify 1 files.")
}

func TestWalker_Run_Backup(t *testing.T) {
	ctx, root, _, logger := createTestEnv(t, map[string]string{
		"index.html": chatPage,
		"plain.html": footerPage,
	})

	_, err := newTestWalker(t, root, logger, func(o *Options) {
		o.Backup = true
	}).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, chatFixed, readFile(t, root, "index.html"))
	assert.Equal(t, chatPage, readFile(t, root, "index.html.bak"), "backup should hold the original")

	_, err = os.Stat(filepath.Join(root, "plain.html.bak"))
	assert.True(t, os.IsNotExist(err), "unchanged files are not backed up")
}

func TestWalker_Discover(t *testing.T) {
	tests := []struct {
		name    string
		include string
		ignore  []string
		want    []string
	}{
		{
			name: "default_include",
			want: []string{".hidden/page.html", "blog/2024/post.html", "blog/drafts/wip.html", "index.html"},
		},
		{
			name:   "ignore_patterns",
			ignore: []string{"blog/drafts/**", ".*/**"},
			want:   []string{"blog/2024/post.html", "index.html"},
		},
		{
			name:    "custom_include",
			include: "blog/**/*.html",
			want:    []string{"blog/2024/post.html", "blog/drafts/wip.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, root, _, logger := createTestEnv(t, map[string]string{
				"index.html":           "",
				"style.css":            "",
				"blog/2024/post.html":  "",
				"blog/drafts/wip.html": "",
				".hidden/page.html":    "",
			})

			w := newTestWalker(t, root, logger, func(o *Options) {
				o.Include = tt.include
				o.Ignore = tt.ignore
			})
			got, err := w.Discover(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestWalker_Discover_BadPattern(t *testing.T) {
	ctx, root, _, logger := createTestEnv(t, nil)
	w := newTestWalker(t, root, logger, func(o *Options) {
		o.Include = "[.html"
	})
	_, err := w.Run(ctx)
	require.Error(t, err)
}

// 🔧 MockFileManager is a mock implementation of status.FileManager
type MockFileManager struct {
	mock.Mock
}

func (m *MockFileManager) ReadFile(ctx context.Context, path string) (string, error) {
	result := m.Called(ctx, path)
	return result.String(0), result.Error(1)
}

func (m *MockFileManager) WriteFileAtomic(ctx context.Context, path string, content string) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *MockFileManager) BackupFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func TestWalker_ProcessFile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(m *MockFileManager)
		backup    bool
		wantError string
	}{
		{
			name: "read_error",
			setup: func(m *MockFileManager) {
				m.On("ReadFile", mock.Anything, "page.html").Return("", errors.New("permission denied"))
			},
			wantError: "permission denied",
		},
		{
			name: "write_error",
			setup: func(m *MockFileManager) {
				m.On("ReadFile", mock.Anything, "page.html").Return(chatPage, nil)
				m.On("WriteFileAtomic", mock.Anything, "page.html", chatFixed).Return(errors.New("disk full"))
			},
			wantError: "disk full",
		},
		{
			name: "backup_error_skips_write",
			setup: func(m *MockFileManager) {
				m.On("ReadFile", mock.Anything, "page.html").Return(chatPage, nil)
				m.On("BackupFile", mock.Anything, "page.html").Return(errors.New("read-only"))
			},
			backup:    true,
			wantError: "read-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, root, buf, logger := createTestEnv(t, nil)
			files := &MockFileManager{}
			tt.setup(files)

			w := newTestWalker(t, root, logger, func(o *Options) {
				o.Files = files
				o.Backup = tt.backup
			})
			info := w.ProcessFile(ctx, "page.html")

			assert.Equal(t, status.StatusFailed, info.Status)
			require.Error(t, info.Error)
			assert.Contains(t, info.Error.Error(), tt.wantError)
			assert.True(t, strings.Contains(buf.String(), "Error processing page.html: "), "error line should be printed")
			files.AssertExpectations(t)
		})
	}
}

func TestNewWalker_Validation(t *testing.T) {
	_, err := NewWalker(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrector is required")

	_, err = NewWalker(Options{Corrector: text.NewCorrector()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file manager is required")
}

func TestRenderDiff(t *testing.T) {
	got := renderDiff(`href="https://wa.me/x-1"`, `href="https://wa.me/x💬-1"`)
	assert.Equal(t, `  + …href="https://wa.me/x[+💬]-1"…`, got)
}

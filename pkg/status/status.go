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

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidUTF8 is returned when a file cannot be decoded as UTF-8.
var ErrInvalidUTF8 = errors.Base("invalid UTF-8")

// 📊 FileStatus represents the outcome of checking a file
type FileStatus int

const (
	StatusUnknown      FileStatus = iota
	StatusCorrected               // Emoji were inserted and the file was written
	StatusWouldCorrect            // Emoji are missing but the run is a dry run
	StatusUnchanged               // No correction needed
	StatusFailed                  // Reading, correcting or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusCorrected:
		return "corrected"
	case StatusWouldCorrect:
		return "would correct"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains the outcome for one file
type FileInfo struct {
	Path       string     // Path relative to the walk root
	Status     FileStatus // Outcome
	Insertions int        // Number of emoji inserted
	Error      error      // Any error associated with this file
}

// 💾 FileManager handles the file system side of a correction run
type FileManager interface {
	ReadFile(ctx context.Context, path string) (string, error)
	WriteFileAtomic(ctx context.Context, path string, content string) error
	BackupFile(ctx context.Context, path string) error
}

// 🔧 Manager implements FileManager relative to a base directory
type Manager struct {
	baseDir string
	logger  *zerolog.Logger
}

// 🏭 New creates a new file manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		logger:  logger,
	}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, filepath.FromSlash(path))
}

// ReadFile reads the whole file and checks that it is valid UTF-8.
func (m *Manager) ReadFile(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return "", errors.Errorf("reading file: %w", err)
	}
	if !utf8.Valid(content) {
		return "", errors.WithStack(ErrInvalidUTF8)
	}
	m.logger.Trace().Str("path", path).Int("bytes", len(content)).Msg("read file")
	return string(content), nil
}

// WriteFileAtomic writes to a temp file next to the target and renames it
// over the target. The target's permissions are kept.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content string) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(tempPath, []byte(content), mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	m.logger.Trace().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// BackupFile copies path to path+".bak". Missing files are not an error.
func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}

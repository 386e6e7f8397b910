package status

import (
	"fmt"
)

// FileFormatter defines how per-file outcomes are worded
type FileFormatter interface {
	// FormatChecking formats the line printed before a file is processed
	FormatChecking(path string) string

	// FormatFileOperation formats the outcome line for a file
	FormatFileOperation(info FileInfo) string

	// FormatSummary formats the final line of a run
	FormatSummary(modified int, dryRun bool) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatChecking formats the line printed before a file is processed
func (f *DefaultFileFormatter) FormatChecking(path string) string {
	return fmt.Sprintf("Checking file: %s", path)
}

// FormatFileOperation formats the outcome line for a file
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusCorrected:
		return fmt.Sprintf("✓ Corrected emojis in %s", info.Path)
	case StatusWouldCorrect:
		return fmt.Sprintf("✓ Would correct emojis in %s", info.Path)
	case StatusFailed:
		return fmt.Sprintf("Error processing %s: %v", info.Path, info.Error)
	default:
		return fmt.Sprintf("No corrections needed in %s", info.Path)
	}
}

// FormatSummary formats the final line of a run
func (f *DefaultFileFormatter) FormatSummary(modified int, dryRun bool) string {
	if dryRun {
		return fmt.Sprintf("Operation complete. Would modify %d files.", modified)
	}
	return fmt.Sprintf("Operation complete. Modified %d files.", modified)
}

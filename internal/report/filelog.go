// Package report records run outcomes: a per-record diagnostics log and
// a JSON summary written at the end of each run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
)

// FileLog appends one line per record that was left unprocessed. The
// file is truncated when the log is opened, so it always describes the
// most recent run.
type FileLog struct {
	path    string
	file    billy.File
	entries int
}

// NewFileLog creates (or truncates) the log file at path.
func NewFileLog(fsys billy.Filesystem, path string) (*FileLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}
	}

	file, err := fsys.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}

	return &FileLog{path: path, file: file}, nil
}

// Log records one unprocessed record and the reason it was left alone.
func (l *FileLog) Log(filePath, detail string) {
	l.entries++
	line := fmt.Sprintf("%s | %s | %s\n", time.Now().Format(time.RFC3339), filePath, detail)
	l.file.Write([]byte(line))
}

// Count returns the number of logged records.
func (l *FileLog) Count() int {
	return l.entries
}

// Summary returns a one-line description of the log.
func (l *FileLog) Summary() string {
	if l.entries == 0 {
		return "No unprocessed records"
	}
	return fmt.Sprintf("%d unprocessed record(s) logged to %s", l.entries, l.path)
}

// Close closes the log file.
func (l *FileLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

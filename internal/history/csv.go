package history

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"interviewer/internal/domain"
)

var header = []string{"timestamp", "question", "category", "response", "score", "assessment"}

// Logger appends completed evaluations to a flat CSV file. It is a
// write-only collaborator: nothing in the core reads the log back.
type Logger struct {
	path string
}

// NewLogger creates a logger writing to path. The file and its directory
// are created on first append.
func NewLogger(path string) *Logger { return &Logger{path: path} }

// Append writes one entry, emitting the header only when the file is new.
func (l *Logger) Append(e domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	writeHeader := false
	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		writeHeader = true
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	record := []string{
		ts.Format(time.RFC3339),
		e.Question,
		e.Category,
		e.Response,
		strconv.Itoa(e.Score),
		e.Assessment,
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

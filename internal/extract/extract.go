package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType reports a file extension the extractor cannot read.
var ErrUnsupportedType = errors.New("unsupported file type")

// Text extracts plain text from an uploaded file based on its extension.
// Only .txt is readable directly; .pdf and .docx must be converted by the
// user first. The core treats the returned text as opaque.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("extraction error: %w", err)
		}
		return string(data), nil
	case ".pdf", ".docx":
		return "", fmt.Errorf("%w: %s (convert to .txt first)", ErrUnsupportedType, filepath.Ext(path))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
}

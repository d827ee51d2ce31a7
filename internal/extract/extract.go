// Package extract pulls plain text out of uploaded JD and resume files.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// SupportedExt reports whether the file extension can be parsed.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

// SaveUpload writes an uploaded file under dir and returns its path and size.
// The stored name is prefixed by the caller (user id + timestamp) to keep
// uploads separated per tenant.
func SaveUpload(dir, storedName string, reader io.Reader) (string, int64, error) {
	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(storedName)), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	path := filepath.Join(dir, storedName)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, reader)
	if err != nil {
		return "", 0, fmt.Errorf("failed to save file: %w", err)
	}
	return path, size, nil
}

// Text extracts the plain text content of the file at path.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case ".pdf", ".docx", ".doc":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract text: %w", err)
		}
		return strings.TrimSpace(res.Body), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores generated PDFs on the local filesystem. The production blob
// store sits behind the same Put/Get shape; write_off_pdf.location records
// whatever this returns.
type Disk struct{ base string }

func NewDisk(base string) (*Disk, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", base, err)
	}
	return &Disk{base: base}, nil
}

// Put writes data under a sanitized name and returns the location key.
func (d *Disk) Put(_ context.Context, name string, data []byte) (string, error) {
	name = sanitize(name)
	if name == "" {
		return "", fmt.Errorf("storage: empty object name")
	}
	path := filepath.Join(d.base, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", path, err)
	}
	return path, nil
}

func (d *Disk) Get(_ context.Context, location string) ([]byte, error) {
	return os.ReadFile(location)
}

// sanitize strips path separators so callers cannot escape the base dir.
func sanitize(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores blobs as plain files in a directory. Files are served
// statically under /uploads/ by the HTTP layer.
type Local struct {
	dir string
}

// NewLocal creates a filesystem store rooted at dir.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Dir returns the storage directory.
func (l *Local) Dir() string {
	return l.dir
}

// Save writes the blob to disk and returns its name as the reference.
func (l *Local) Save(_ context.Context, name string, r io.Reader) (string, error) {
	// Base-name only, uploads must not escape the directory.
	name = filepath.Base(name)

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating receipt file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing receipt file: %w", err)
	}
	return name, nil
}

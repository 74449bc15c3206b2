// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package blobstore stores uploaded receipt files outside the primary
// database.
package blobstore

import (
	"context"
	"io"
	"path/filepath"
	"time"
)

// Store persists named blobs. Save returns the reference under which the
// blob can be retrieved later.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Filename derives the stored name for an uploaded receipt. The upload
// timestamp prefix keeps names of identically named files from
// colliding.
func Filename(now time.Time, original string) string {
	return now.UTC().Format("20060102_150405") + "_" + filepath.Base(original)
}

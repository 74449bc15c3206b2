// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
)

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	assert.Equal(t, "20250314_092653_receipt.pdf", blobstore.Filename(now, "receipt.pdf"))
}

func TestFilename_StripsDirectories(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	assert.Equal(t, "20250314_092653_passwd", blobstore.Filename(now, "../../etc/passwd"))
}

func TestFilename_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, loc)

	assert.Equal(t, "20250314_090000_a.png", blobstore.Filename(now, "a.png"))
}

func TestLocalSave(t *testing.T) {
	store, err := blobstore.NewLocal(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "receipt.pdf", strings.NewReader("pdf bytes"))

	require.NoError(t, err)
	assert.Equal(t, "receipt.pdf", ref)

	data, err := os.ReadFile(filepath.Join(store.Dir(), "receipt.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestLocalSave_CannotEscapeDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := blobstore.NewLocal(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "../escape.txt", strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "escape.txt", ref)

	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)
}

func TestNewLocal_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := blobstore.NewLocal(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

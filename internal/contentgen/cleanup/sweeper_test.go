package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestSweepRemovesExpiredDocuments(t *testing.T) {
	dir := t.TempDir()
	oldPDF := writeAged(t, dir, "old.pdf", 10*24*time.Hour)
	oldPPTX := writeAged(t, dir, "old.pptx", 10*24*time.Hour)
	freshPDF := writeAged(t, dir, "fresh.pdf", time.Hour)
	other := writeAged(t, dir, "old.txt", 10*24*time.Hour)

	removed, err := NewSweeper(dir, 7).Sweep(time.Now())

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoFileExists(t, oldPDF)
	assert.NoFileExists(t, oldPPTX)
	assert.FileExists(t, freshPDF)
	assert.FileExists(t, other, "non-document files are never touched")
}

func TestSweepSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	removed, err := NewSweeper(dir, 7).Sweep(time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.DirExists(t, filepath.Join(dir, "nested.pdf"))
}

func TestSweepMissingDirectory(t *testing.T) {
	_, err := NewSweeper(filepath.Join(t.TempDir(), "absent"), 7).Sweep(time.Now())
	assert.Error(t, err)
}

func TestStartDisabledWithoutRetention(t *testing.T) {
	s := NewSweeper(t.TempDir(), 0)
	s.Start()
	defer s.Stop()
	assert.Nil(t, s.cron)
}

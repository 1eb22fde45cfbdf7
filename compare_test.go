package komparu

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

func TestCompare_IdenticalLocalFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("same content"))
	b := writeFile(t, dir, "b.txt", []byte("same content"))

	equal, err := Compare(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCompare_DifferingLocalFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("one"))
	b := writeFile(t, dir, "b.txt", []byte("two"))

	equal, err := Compare(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestCompare_SameFileAgainstItselfUsesIdentityShortcut(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("x"))

	equal, err := Compare(context.Background(), a, a)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCompare_IsSymmetric(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("alpha"))
	b := writeFile(t, dir, "b.txt", []byte("beta"))

	ab, err := Compare(context.Background(), a, b)
	require.NoError(t, err)
	ba, err := Compare(context.Background(), b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCompare_MissingSourceIsNotFoundError(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("x"))

	_, err := Compare(context.Background(), a, filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestCompare_NonRegularFileIsReadErrorNotNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("FIFOs require a Unix filesystem")
	}
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("x"))
	fifoPath := filepath.Join(dir, "fifo")
	require.NoError(t, syscall.Mkfifo(fifoPath, 0o600))

	_, err := Compare(context.Background(), a, fifoPath)
	assert.ErrorIs(t, err, ErrSourceReadError)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
}

func TestCompare_RejectedSymlinkIsReadErrorNotNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink rejection semantics differ on Windows")
	}
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("x"))
	target := writeFile(t, dir, "target.txt", []byte("x"))
	linkPath := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(target, linkPath))

	_, err := Compare(context.Background(), a, linkPath, WithFollowSymlinks(false))
	assert.ErrorIs(t, err, ErrSourceReadError)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
}

func TestCompare_InMemoryBytes(t *testing.T) {
	equal, err := Compare(context.Background(), []byte("abc"), []byte("abc"))
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = Compare(context.Background(), []byte("abc"), []byte("abd"))
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestCompare_MixedLocalAndMemorySources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("mixed content"))

	equal, err := Compare(context.Background(), NewLocalSource(a), NewMemorySource([]byte("mixed content")))
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCompare_EmptyFilesAreEqual(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", nil)
	b := writeFile(t, dir, "b.txt", nil)

	equal, err := Compare(context.Background(), a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCompare_RejectsInvalidConfigBeforeAnyIO(t *testing.T) {
	_, err := Compare(context.Background(), "/does/not/matter", "/also/irrelevant", WithChunkSize(-1))
	assert.ErrorIs(t, err, ErrConfig)
}

func TestCompare_QuickCheckAndFullScanAgreeOnEquality(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 5*1024*1024)
	for i := range content {
		content[i] = byte(i % 256)
	}
	a := writeFile(t, dir, "a.bin", content)
	b := writeFile(t, dir, "b.bin", content)

	withQuick, err := Compare(context.Background(), a, b, WithQuickCheck(true))
	require.NoError(t, err)
	withoutQuick, err := Compare(context.Background(), a, b, WithQuickCheck(false))
	require.NoError(t, err)
	assert.Equal(t, withQuick, withoutQuick)
	assert.True(t, withQuick)
}

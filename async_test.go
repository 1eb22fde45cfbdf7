package komparu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStart_DeliversResult(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("same"))
	b := writeFile(t, dir, "b.txt", []byte("same"))

	handle, fd, err := CompareStart(context.Background(), a, b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fd, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	equal, err := handle.Result(ctx)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestAsyncHandle_ResultIsConsumedExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("x"))

	handle, _, err := CompareStart(context.Background(), a, a)
	require.NoError(t, err)

	_, err = handle.Result(context.Background())
	require.NoError(t, err)

	_, err = handle.Result(context.Background())
	assert.Error(t, err)
}

func TestAsyncHandle_ResultRespectsContextCancellation(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, 64<<20)
	a := writeFile(t, dir, "a.bin", big)
	b := writeFile(t, dir, "b.bin", big)

	handle, _, err := CompareStart(context.Background(), a, b)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	_, err = handle.Result(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
}

func TestCompareDirStart_DeliversDirResult(t *testing.T) {
	left := t.TempDir()
	right := t.TempDir()
	writeFile(t, left, "a.txt", []byte("1"))
	writeFile(t, right, "a.txt", []byte("1"))

	handle, _, err := CompareDirStart(context.Background(), left, right)
	require.NoError(t, err)

	result, err := handle.Result(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Equal)
}

func TestCompareManyStart_DeliversCompareResult(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("same"))
	b := writeFile(t, dir, "b.txt", []byte("same"))

	handle, _, err := CompareManyStart(context.Background(), []any{a, b})
	require.NoError(t, err)

	result, err := handle.Result(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AllEqual)
}

package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHighlyCompressibleTarGz(t *testing.T, name string, size int) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	content := bytes.Repeat([]byte{0}, size)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(content))}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestWalk_MaxDecompressedSizeTrips(t *testing.T) {
	data := buildHighlyCompressibleTarGz(t, "bomb.bin", 1<<20)

	err := Walk(bytes.NewReader(data), nil, 0, Limits{MaxDecompressedSize: 1024}, func(entry Entry, content io.Reader) error {
		_, rerr := io.Copy(io.Discard, content)
		return rerr
	})
	var bomb *BombError
	require.ErrorAs(t, err, &bomb)
	assert.Contains(t, bomb.Reason, "decompressed size")
}

func TestWalk_MaxCompressionRatioTrips(t *testing.T) {
	data := buildHighlyCompressibleTarGz(t, "bomb.bin", 4<<20)

	err := Walk(bytes.NewReader(data), nil, 0, Limits{MaxCompressionRatio: 2}, func(entry Entry, content io.Reader) error {
		_, rerr := io.Copy(io.Discard, content)
		return rerr
	})
	var bomb *BombError
	require.ErrorAs(t, err, &bomb)
	assert.Contains(t, bomb.Reason, "ratio")
}

func TestWalk_WithinLimitsSucceeds(t *testing.T) {
	data := buildHighlyCompressibleTarGz(t, "fine.bin", 1024)

	err := Walk(bytes.NewReader(data), nil, 0, Limits{MaxDecompressedSize: 1 << 20, MaxCompressionRatio: 10000}, func(entry Entry, content io.Reader) error {
		_, rerr := io.Copy(io.Discard, content)
		return rerr
	})
	assert.NoError(t, err)
}

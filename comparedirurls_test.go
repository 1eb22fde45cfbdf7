package komparu

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, content := range files {
		content := content
		mux.HandleFunc("/"+path, func(w http.ResponseWriter, r *http.Request) {
			http.ServeContent(w, r, path, time.Time{}, bytesReader(content))
		})
	}
	return httptest.NewServer(mux)
}

func bytesReader(content string) *sectionReadSeeker {
	return &sectionReadSeeker{data: []byte(content)}
}

type sectionReadSeeker struct {
	data []byte
	pos  int64
}

func (s *sectionReadSeeker) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *sectionReadSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = offset
	case io.SeekCurrent:
		s.pos += offset
	case io.SeekEnd:
		s.pos = int64(len(s.data)) + offset
	}
	return s.pos, nil
}

func TestCompareDirURLs_IdenticalLocalAndRemote(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("hello"))
	writeFile(t, dir, "b.txt", []byte("world"))

	srv := fileServer(t, map[string]string{"a.txt": "hello", "b.txt": "world"})
	defer srv.Close()

	result, err := CompareDirURLs(context.Background(), dir, map[string]string{
		"a.txt": srv.URL + "/a.txt",
		"b.txt": srv.URL + "/b.txt",
	}, WithAllowPrivate(true))
	require.NoError(t, err)
	assert.True(t, result.Equal)
}

func TestCompareDirURLs_DetectsContentMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("local version"))

	srv := fileServer(t, map[string]string{"a.txt": "remote version"})
	defer srv.Close()

	result, err := CompareDirURLs(context.Background(), dir, map[string]string{
		"a.txt": srv.URL + "/a.txt",
	}, WithAllowPrivate(true))
	require.NoError(t, err)
	assert.False(t, result.Equal)
	assert.Equal(t, ContentMismatch, result.Diff["a.txt"])
}

func TestCompareDirURLs_OnlyLocalAndOnlyRemote(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "local_only.txt", []byte("x"))

	srv := fileServer(t, map[string]string{"remote_only.txt": "y"})
	defer srv.Close()

	result, err := CompareDirURLs(context.Background(), dir, map[string]string{
		"remote_only.txt": srv.URL + "/remote_only.txt",
	}, WithAllowPrivate(true))
	require.NoError(t, err)
	_, hasLeft := result.OnlyLeft["local_only.txt"]
	_, hasRight := result.OnlyRight["remote_only.txt"]
	assert.True(t, hasLeft)
	assert.True(t, hasRight)
}

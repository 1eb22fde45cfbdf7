package komparu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceConstructors_SetExpectedKind(t *testing.T) {
	assert.Equal(t, KindLocal, NewLocalSource("/tmp/x").Kind)
	assert.Equal(t, KindRemote, NewRemoteSource("https://example.com/x").Kind)
	assert.Equal(t, KindMemory, NewMemorySource([]byte("x")).Kind)
}

func TestSource_NameReflectsKind(t *testing.T) {
	assert.Equal(t, "/tmp/x", NewLocalSource("/tmp/x").name())
	assert.Equal(t, "https://example.com/x", NewRemoteSource("https://example.com/x").name())
	assert.Equal(t, "<memory>", NewMemorySource([]byte("x")).name())
}

func TestDirResult_RecomputeReflectsEmptyState(t *testing.T) {
	r := newDirResult()
	assert.True(t, r.Equal)

	r.Diff["a"] = ContentMismatch
	r.recompute()
	assert.False(t, r.Equal)
}

func TestDiffReason_StringerCoversAllValues(t *testing.T) {
	cases := map[DiffReason]string{
		ContentMismatch: "CONTENT_MISMATCH",
		SizeMismatch:    "SIZE_MISMATCH",
		Missing:         "MISSING",
		TypeMismatch:    "TYPE_MISMATCH",
		ReadError:       "READ_ERROR",
	}
	for reason, want := range cases {
		assert.Equal(t, want, reason.String())
	}
}

func TestSourceKind_StringerCoversAllValues(t *testing.T) {
	assert.Equal(t, "local", KindLocal.String())
	assert.Equal(t, "remote", KindRemote.String())
	assert.Equal(t, "memory", KindMemory.String())
}

package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_RecognizesGzip(t *testing.T) {
	assert.Equal(t, FormatGzip, Detect([]byte{0x1f, 0x8b, 0x08, 0x00}))
}

func TestDetect_RecognizesBzip2(t *testing.T) {
	assert.Equal(t, FormatBzip2, Detect([]byte("BZh91AY")))
}

func TestDetect_RecognizesXz(t *testing.T) {
	assert.Equal(t, FormatXz, Detect([]byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}))
}

func TestDetect_RecognizesZipLocalHeader(t *testing.T) {
	assert.Equal(t, FormatZip, Detect([]byte{'P', 'K', 0x03, 0x04}))
}

func TestDetect_RecognizesEmptyZipEOCD(t *testing.T) {
	assert.Equal(t, FormatZip, Detect([]byte{'P', 'K', 0x05, 0x06, 0, 0, 0, 0}))
}

func TestDetect_RecognizesUstarTar(t *testing.T) {
	head := make([]byte, tarMagicOffset+8)
	copy(head[tarMagicOffset:], []byte("ustar\x0000"))
	assert.Equal(t, FormatTar, Detect(head))
}

func TestDetect_UnknownForShortOrRandomInput(t *testing.T) {
	assert.Equal(t, FormatUnknown, Detect([]byte{1, 2, 3}))
	assert.Equal(t, FormatUnknown, Detect(nil))
}

func TestDetect_NeverConsultsExtension(t *testing.T) {
	// A renamed gzip stream is still detected by its magic bytes alone;
	// Detect doesn't even take a name parameter.
	assert.Equal(t, FormatGzip, Detect([]byte{0x1f, 0x8b, 0x08, 0x00, 0x00}))
}

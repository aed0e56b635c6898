package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		expected FileType
	}{
		{"a.MP3", FileTypeMPEG},
		{"a.mp2", FileTypeMPEG},
		{"a.mpeg", FileTypeMPEG},
		{"a.ogg", FileTypeOggVorbis},
		{"a.OGG", FileTypeOggVorbis},
		{"a.wav", FileTypeWAV},
		{"a.aiff", FileTypeAIFF},
		{"a.xma", FileTypeXMA},
		{"a.xm", FileTypeXM},
		{"a.it", FileTypeIT},
		{"a.mod", FileTypeMOD},
		{"a.alac", FileTypeAudioQueue},
		{"a.aac", FileTypeAudioQueue},
		{"a.s3m", FileTypeS3M},
		{"a.vag", FileTypeVAG},
		{"a.txt", FileTypeUnknown},
		{"noext", FileTypeUnknown},
		{"trailing.", FileTypeUnknown},
		{"archive.tar.mp3", FileTypeMPEG},
		{"", FileTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TypeFromFileName(tt.name), "file %q", tt.name)
	}
}

package audio

import (
	"path/filepath"
	"strings"
)

// TypeFromFileName maps a file name to its audio file type by the substring
// after the final dot, case-insensitively. Names without an extension
// resolve to FileTypeUnknown. Pure; performs no I/O.
func TypeFromFileName(name string) FileType {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "mp3", "mp2", "mpeg":
		return FileTypeMPEG
	case "ogg":
		return FileTypeOggVorbis
	case "wav":
		return FileTypeWAV
	case "aiff":
		return FileTypeAIFF
	case "xma":
		return FileTypeXMA
	case "xm":
		return FileTypeXM
	case "it":
		return FileTypeIT
	case "mod":
		return FileTypeMOD
	case "alac", "aac":
		return FileTypeAudioQueue
	case "s3m":
		return FileTypeS3M
	case "vag":
		return FileTypeVAG
	default:
		return FileTypeUnknown
	}
}

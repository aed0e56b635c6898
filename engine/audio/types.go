package audio

/** @brief Pre-defined audio file types, resolved from file extensions. */
type FileType int

const (
	/** @brief Unrecognized or missing extension. Never loaded. */
	FileTypeUnknown FileType = iota
	FileTypeMPEG
	FileTypeOggVorbis
	FileTypeWAV
	FileTypeAIFF
	FileTypeXMA
	FileTypeXM
	FileTypeIT
	FileTypeMOD
	FileTypeAudioQueue
	FileTypeS3M
	FileTypeVAG
)

func (t FileType) String() string {
	switch t {
	case FileTypeMPEG:
		return "mpeg"
	case FileTypeOggVorbis:
		return "oggvorbis"
	case FileTypeWAV:
		return "wav"
	case FileTypeAIFF:
		return "aiff"
	case FileTypeXMA:
		return "xma"
	case FileTypeXM:
		return "xm"
	case FileTypeIT:
		return "it"
	case FileTypeMOD:
		return "mod"
	case FileTypeAudioQueue:
		return "audioqueue"
	case FileTypeS3M:
		return "s3m"
	case FileTypeVAG:
		return "vag"
	}
	return "unknown"
}

/**
 * @brief An opaque decoded in-memory audio payload, ready for the mixer.
 */
type Handle struct {
	Type FileType
	Data []byte
}

func (h *Handle) Size() uint64 {
	return uint64(len(h.Data))
}

package haptics

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind identifies the container class of an input file
type SourceKind string

const (
	SourceAudio SourceKind = "audio"
	SourceVideo SourceKind = "video"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".m4a":  true,
	".wma":  true,
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
}

// DetectSourceKind classifies a path as audio or video by extension
func DetectSourceKind(path string) (SourceKind, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if audioExtensions[ext] {
		return SourceAudio, nil
	}
	if videoExtensions[ext] {
		return SourceVideo, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, ext)
}

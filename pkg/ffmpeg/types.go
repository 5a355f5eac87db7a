package ffmpeg

import (
	"os"
	"time"
)

// DefaultSampleRate is the analysis sample rate all sources are decoded to.
const DefaultSampleRate = 22050

// DecodeOptions defines options for PCM decoding
type DecodeOptions struct {
	SampleRate  int           `json:"sample_rate"`  // Target sample rate in Hz
	MaxDuration time.Duration `json:"max_duration"` // Maximum duration to process (0 = unlimited)
	TempDir     string        `json:"temp_dir"`     // Directory for temporary files
}

// DefaultDecodeOptions returns sensible defaults for decoding
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		SampleRate:  DefaultSampleRate,
		MaxDuration: 2 * time.Hour,
		TempDir:     os.TempDir(),
	}
}

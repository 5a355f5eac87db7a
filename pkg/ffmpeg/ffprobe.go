package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ffprobeStreams represents the JSON structure returned by ffprobe -show_streams
type ffprobeStreams struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// ProbeDuration returns the total duration of a media file in seconds.
// A duration of 0 (or an unparseable probe) is reported as an error; a
// zero-length source can never produce a meaningful timeline.
func (f *FFmpeg) ProbeDuration(ctx context.Context, filePath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, NewProcessingError("duration_probe", filePath, err, stderr.String())
	}

	durationStr := strings.TrimSpace(stdout.String())
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, NewProcessingError("duration_parse", filePath, err, "")
	}

	if duration <= 0 {
		return 0, NewProcessingError("duration_probe", filePath,
			fmt.Errorf("could not determine media duration"), "")
	}

	return duration, nil
}

// HasAudioStream checks whether the file contains at least one audio stream
func (f *FFmpeg) HasAudioStream(ctx context.Context, filePath string) (bool, error) {
	args := []string{
		"-v", "quiet",
		"-show_streams",
		"-select_streams", "a",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return false, NewProcessingError("stream_probe", filePath, err, stderr.String())
	}

	var output ffprobeStreams
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return false, NewProcessingError("stream_parse", filePath, err, "")
	}

	for _, stream := range output.Streams {
		if stream.CodecType == "audio" {
			return true, nil
		}
	}

	return false, nil
}

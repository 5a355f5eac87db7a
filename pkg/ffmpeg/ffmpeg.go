package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// DecodePCM decodes a media file to mono float64 samples at the requested
// sample rate. The returned sample rate is always opts.SampleRate.
func (f *FFmpeg) DecodePCM(ctx context.Context, input string, opts DecodeOptions) ([]float64, int, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}

	// Check duration limits before decoding the whole file
	if opts.MaxDuration > 0 {
		duration, err := f.ProbeDuration(ctx, input)
		if err != nil {
			return nil, 0, err
		}
		if time.Duration(duration*float64(time.Second)) > opts.MaxDuration {
			return nil, 0, fmt.Errorf("%w: duration %.1fs exceeds limit %.1fs",
				ErrMediaTooLong, duration, opts.MaxDuration.Seconds())
		}
	}

	// Decode to a temporary raw PCM file (32-bit float little-endian, mono)
	rawFile, err := os.CreateTemp(opts.TempDir, "haptic_pcm_*.raw")
	if err != nil {
		return nil, 0, NewProcessingError("temp_file_creation", input, err, "")
	}
	rawPath := rawFile.Name()
	rawFile.Close()
	defer os.Remove(rawPath)

	args := []string{
		"-i", input,
		"-f", "f32le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", opts.SampleRate),
		"-y",
		rawPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, 0, NewProcessingError("pcm_decode", input, err, stderr.String())
	}

	samples, err := readPCMFile(rawPath)
	if err != nil {
		return nil, 0, NewProcessingError("pcm_read", input, err, "")
	}

	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoAudioTrack, input)
	}

	return samples, opts.SampleRate, nil
}

// ExtractAudio extracts the audio track of a media file to a temporary mono
// WAV at opts.SampleRate. The returned cleanup func removes the temp file and
// must be called on every exit path.
func (f *FFmpeg) ExtractAudio(ctx context.Context, input string, opts DecodeOptions) (string, func() error, error) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}

	wavFile, err := os.CreateTemp(opts.TempDir, "haptic_audio_*.wav")
	if err != nil {
		return "", nil, NewProcessingError("temp_file_creation", input, err, "")
	}
	wavPath := wavFile.Name()
	wavFile.Close()

	cleanup := func() error {
		err := os.Remove(wavPath)
		if err != nil && os.IsNotExist(err) {
			return nil
		}
		return err
	}

	args := []string{
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", opts.SampleRate),
		"-y",
		wavPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cleanupErr := cleanup(); cleanupErr != nil {
			return "", nil, cleanupErr
		}
		return "", nil, NewProcessingError("audio_extraction", input, err, stderr.String())
	}

	return wavPath, cleanup, nil
}

// readPCMFile reads a raw f32le PCM file into float64 samples
func readPCMFile(rawPath string) ([]float64, error) {
	data, err := os.ReadFile(filepath.Clean(rawPath))
	if err != nil {
		return nil, err
	}

	numSamples := len(data) / 4 // 4 bytes per float32 sample
	samples := make([]float64, 0, numSamples)

	for i := 0; i+4 <= len(data); i += 4 {
		bits := binary.LittleEndian.Uint32(data[i : i+4])
		sample := math.Float32frombits(bits)
		if math.IsNaN(float64(sample)) || math.IsInf(float64(sample), 0) {
			sample = 0
		}
		samples = append(samples, float64(sample))
	}

	return samples, nil
}

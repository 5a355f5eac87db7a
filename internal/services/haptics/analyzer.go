package haptics

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/killallgit/haptic-api/internal/services/features"
	"github.com/killallgit/haptic-api/pkg/ffmpeg"
)

// MediaDecoder is the external media collaborator: PCM decoding, audio
// track extraction and duration probing (ffmpeg/ffprobe in production)
type MediaDecoder interface {
	DecodePCM(ctx context.Context, input string, opts ffmpeg.DecodeOptions) ([]float64, int, error)
	ExtractAudio(ctx context.Context, input string, opts ffmpeg.DecodeOptions) (string, func() error, error)
	ProbeDuration(ctx context.Context, path string) (float64, error)
	HasAudioStream(ctx context.Context, path string) (bool, error)
}

// FeatureExtractor turns PCM samples into per-analysis-frame feature series
type FeatureExtractor interface {
	Extract(samples []float64) (*features.Bundle, error)
}

// Options configures an Analyzer
type Options struct {
	FPS        int    // Output frame rate
	SampleRate int    // Decode sample rate
	HopLength  int    // Analysis hop length in samples
	TempDir    string // Directory for temporary extracted audio
}

// DefaultOptions returns the standard analysis configuration
func DefaultOptions() Options {
	return Options{
		FPS:        60,
		SampleRate: ffmpeg.DefaultSampleRate,
		HopLength:  features.DefaultHopLength,
	}
}

// Analyzer runs the whole batch pipeline: decode, feature extraction,
// resampling, smoothing, event selection and timeline assembly
type Analyzer struct {
	media     MediaDecoder
	extractor FeatureExtractor
	opts      Options
}

// NewAnalyzer creates an analyzer. The extractor must be configured for the
// same sample rate and hop length as opts.
func NewAnalyzer(media MediaDecoder, extractor FeatureExtractor, opts Options) *Analyzer {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = ffmpeg.DefaultSampleRate
	}
	if opts.HopLength <= 0 {
		opts.HopLength = features.DefaultHopLength
	}

	return &Analyzer{
		media:     media,
		extractor: extractor,
		opts:      opts,
	}
}

// WithFPS returns a copy of the analyzer that emits timelines at the given
// frame rate. Non-positive values return the receiver unchanged.
func (a *Analyzer) WithFPS(fps int) *Analyzer {
	if fps <= 0 {
		return a
	}
	clone := *a
	clone.opts.FPS = fps
	return &clone
}

// Analyze converts a media file into a haptic timeline. Temporary extracted
// audio is removed on every exit path.
func (a *Analyzer) Analyze(ctx context.Context, sourcePath string) (*Timeline, error) {
	kind, err := DetectSourceKind(sourcePath)
	if err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] Analyzing %s file: %s", kind, sourcePath)

	decodeOpts := ffmpeg.DecodeOptions{
		SampleRate: a.opts.SampleRate,
		TempDir:    a.opts.TempDir,
	}

	// Video containers get their audio track extracted to a temp WAV first
	audioPath := sourcePath
	if kind == SourceVideo {
		hasAudio, err := a.media.HasAudioStream(ctx, sourcePath)
		if err != nil {
			return nil, err
		}
		if !hasAudio {
			return nil, fmt.Errorf("%w: %s", ffmpeg.ErrNoAudioTrack, sourcePath)
		}

		extracted, cleanup, err := a.media.ExtractAudio(ctx, sourcePath, decodeOpts)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cleanupErr := cleanup(); cleanupErr != nil {
				log.Printf("[WARN] Failed to remove temporary audio: %v", cleanupErr)
			}
		}()
		audioPath = extracted
	}

	samples, _, err := a.media.DecodePCM(ctx, audioPath, decodeOpts)
	if err != nil {
		return nil, err
	}

	bundle, err := a.extractor.Extract(samples)
	if err != nil {
		return nil, fmt.Errorf("feature extraction failed: %w", err)
	}

	// Duration comes from the original source, not the extracted track
	duration, err := a.media.ProbeDuration(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDurationUnavailable, err)
	}

	timeline, err := a.buildTimeline(bundle, duration, sourcePath, kind)
	if err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] Generated %d haptic events over %.2fs (%d frames at %d fps)",
		len(timeline.Events), timeline.Metadata.Duration, timeline.Metadata.TotalFrames, a.opts.FPS)

	return timeline, nil
}

// buildTimeline runs the numeric pipeline: resample onto the output frame
// grid, smooth, select events, assemble
func (a *Analyzer) buildTimeline(bundle *features.Bundle, duration float64, sourcePath string, kind SourceKind) (*Timeline, error) {
	totalFrames := int(math.Round(duration * float64(a.opts.FPS)))
	if totalFrames <= 0 {
		return nil, fmt.Errorf("%w: %.3fs at %d fps yields no output frames",
			ErrDegenerateSeries, duration, a.opts.FPS)
	}

	frames := &SmoothedFrames{}
	for _, series := range []struct {
		src []float64
		dst *[]float64
	}{
		{bundle.RMS, &frames.RMS},
		{bundle.Centroid, &frames.Centroid},
		{bundle.Rolloff, &frames.Rolloff},
		{bundle.Bandwidth, &frames.Bandwidth},
	} {
		resampled, err := Resample(series.src, totalFrames)
		if err != nil {
			return nil, err
		}
		*series.dst = Smooth(resampled)
	}

	events, err := SelectEvents(frames, a.opts.FPS)
	if err != nil {
		return nil, err
	}

	return Assemble(events, a.opts.FPS, duration, totalFrames, sourcePath, kind), nil
}

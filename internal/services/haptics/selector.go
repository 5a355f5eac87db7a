package haptics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Selection constants. The intensity gate is dynamic (derived from the RMS
// series); the decimation factor is fixed.
const (
	// thresholdStdWeight scales the stddev term of the dynamic gate:
	// threshold = mean(rms) + thresholdStdWeight * stddev(rms).
	// Population stddev, matching the whole-series reduction semantics.
	thresholdStdWeight = 0.5

	// decimationFactor keeps one output frame in two: only even frame
	// indices may emit, independently of the intensity gate.
	decimationFactor = 2

	// sharpnessFallback is used when the centroid series is all zero and
	// normalization would divide by zero.
	sharpnessFallback = 0.5

	intensityGain = 2.0
)

// SmoothedFrames bundles the four smoothed, equal-length series the
// selector and classifier consume.
type SmoothedFrames struct {
	RMS       []float64
	Centroid  []float64
	Rolloff   []float64
	Bandwidth []float64
}

func (s *SmoothedFrames) validate() error {
	n := len(s.RMS)
	if n == 0 {
		return fmt.Errorf("%w: empty RMS series", ErrDegenerateSeries)
	}
	if len(s.Centroid) != n || len(s.Rolloff) != n || len(s.Bandwidth) != n {
		return fmt.Errorf("%w: series lengths differ (rms=%d centroid=%d rolloff=%d bandwidth=%d)",
			ErrDegenerateSeries, n, len(s.Centroid), len(s.Rolloff), len(s.Bandwidth))
	}
	return nil
}

// SelectEvents walks every output frame, classifies it and materializes an
// event when the frame passes both the dynamic intensity gate (strictly
// above threshold) and the even-index decimation. Events come out in
// strictly increasing time order.
func SelectEvents(frames *SmoothedFrames, fps int) ([]Event, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	if err := frames.validate(); err != nil {
		return nil, err
	}

	// Whole-series reductions happen once, before any frame is decided.
	// Everything after this point is a pure per-frame function.
	meanRMS := stat.Mean(frames.RMS, nil)
	intensityThreshold := meanRMS + thresholdStdWeight*stat.PopStdDev(frames.RMS, nil)

	maxCentroid := 0.0
	for _, c := range frames.Centroid {
		if c > maxCentroid {
			maxCentroid = c
		}
	}

	events := []Event{}
	for i := range frames.RMS {
		intensity := clamp01(frames.RMS[i] * intensityGain)

		sharpness := sharpnessFallback
		if maxCentroid > 0 {
			sharpness = clamp01(frames.Centroid[i] / maxCentroid)
		}

		if intensity <= intensityThreshold || i%decimationFactor != 0 {
			continue
		}

		category := Classify(FrameFeatures{
			RMS:       frames.RMS[i],
			Centroid:  frames.Centroid[i],
			Rolloff:   frames.Rolloff[i],
			Bandwidth: frames.Bandwidth[i],
		}, meanRMS)

		events = append(events, Event{
			Time:      round3(float64(i) / float64(fps)),
			Intensity: round3(intensity),
			Sharpness: round3(sharpness),
			Type:      category,
		})
	}

	return events, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

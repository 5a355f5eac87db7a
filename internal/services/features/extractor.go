package features

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// Default analysis parameters. Frame and hop sizes follow the common
// 2048/512 convention for spectral analysis at 22050 Hz.
const (
	DefaultFrameSize = 2048
	DefaultHopLength = 512

	// rolloffThreshold is the fraction of total spectral energy below the
	// rolloff frequency.
	rolloffThreshold = 0.85

	// pitchMinFreq/pitchMaxFreq bound the spectral peak search for
	// dominant pitch tracking.
	pitchMinFreq = 50.0
	pitchMaxFreq = 4000.0
)

// Bundle holds per-analysis-frame feature series for one source.
// All series share the same frame count and hop-time spacing.
// Rolloff and bandwidth are normalized by Nyquist to the unit interval.
type Bundle struct {
	RMS           []float64 `json:"rms"`
	Centroid      []float64 `json:"centroid"`       // Hz
	Rolloff       []float64 `json:"rolloff"`        // 0-1, fraction of Nyquist
	Bandwidth     []float64 `json:"bandwidth"`      // 0-1, fraction of Nyquist
	OnsetStrength []float64 `json:"onset_strength"` // spectral flux
	OnsetFrames   []int     `json:"onset_frames"`   // frame indices of detected onsets
	PitchMax      []float64 `json:"pitch_max"`      // Hz, highest spectral peak per frame
	PitchMin      []float64 `json:"pitch_min"`      // Hz, lowest spectral peak per frame
	Duration      float64   `json:"duration"`       // analysis-domain duration in seconds
	SampleRate    int       `json:"sample_rate"`
	HopLength     int       `json:"hop_length"`
}

// Frames returns the number of analysis frames
func (b *Bundle) Frames() int {
	return len(b.RMS)
}

// Extractor computes spectral and temporal features from mono PCM samples
type Extractor struct {
	frameSize  int
	hopLength  int
	sampleRate int

	window   []float64 // Pre-computed Hann window
	freqBins []float64 // Pre-computed frequency bin centers
}

// NewExtractor creates an extractor for the given sample rate and hop length
func NewExtractor(sampleRate, hopLength int) *Extractor {
	if hopLength <= 0 {
		hopLength = DefaultHopLength
	}

	e := &Extractor{
		frameSize:  DefaultFrameSize,
		hopLength:  hopLength,
		sampleRate: sampleRate,
	}

	e.window = make([]float64, e.frameSize)
	for i := range e.window {
		e.window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(e.frameSize-1)))
	}

	numBins := e.frameSize/2 + 1
	e.freqBins = make([]float64, numBins)
	for i := range e.freqBins {
		e.freqBins[i] = float64(i) * float64(e.sampleRate) / float64(e.frameSize)
	}

	return e
}

// Extract computes the full feature bundle for a mono signal
func (e *Extractor) Extract(samples []float64) (*Bundle, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if e.sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", e.sampleRate)
	}

	// Short signals are zero-padded to a single full frame
	if len(samples) < e.frameSize {
		padded := make([]float64, e.frameSize)
		copy(padded, samples)
		samples = padded
	}

	numFrames := (len(samples)-e.frameSize)/e.hopLength + 1

	bundle := &Bundle{
		RMS:           make([]float64, numFrames),
		Centroid:      make([]float64, numFrames),
		Rolloff:       make([]float64, numFrames),
		Bandwidth:     make([]float64, numFrames),
		OnsetStrength: make([]float64, numFrames),
		PitchMax:      make([]float64, numFrames),
		PitchMin:      make([]float64, numFrames),
		Duration:      float64(len(samples)) / float64(e.sampleRate),
		SampleRate:    e.sampleRate,
		HopLength:     e.hopLength,
	}

	nyquist := float64(e.sampleRate) / 2

	frameBuffer := make([]float64, e.frameSize)
	var prevMagnitude []float64

	for i := 0; i < numFrames; i++ {
		start := i * e.hopLength
		frame := samples[start : start+e.frameSize]

		bundle.RMS[i] = frameRMS(frame)

		// Windowed FFT, positive frequencies only
		for j, s := range frame {
			frameBuffer[j] = s * e.window[j]
		}
		spectrum := fft.FFTReal(frameBuffer)
		magnitude := make([]float64, e.frameSize/2+1)
		for j := range magnitude {
			magnitude[j] = cmplxAbs(spectrum[j])
		}

		centroid := e.spectralCentroid(magnitude)
		bundle.Centroid[i] = centroid
		bundle.Rolloff[i] = e.spectralRolloff(magnitude) / nyquist
		bundle.Bandwidth[i] = e.spectralBandwidth(magnitude, centroid) / nyquist
		bundle.OnsetStrength[i] = spectralFlux(magnitude, prevMagnitude)
		bundle.PitchMin[i], bundle.PitchMax[i] = e.pitchBounds(magnitude)

		prevMagnitude = magnitude
	}

	bundle.OnsetFrames = detectOnsets(bundle.OnsetStrength)

	return bundle, nil
}

// frameRMS calculates root-mean-square energy over one frame
func frameRMS(frame []float64) float64 {
	sumSquares := 0.0
	for _, s := range frame {
		sumSquares += s * s
	}
	return math.Sqrt(sumSquares / float64(len(frame)))
}

// spectralCentroid computes the center of mass of a magnitude spectrum
func (e *Extractor) spectralCentroid(magnitude []float64) float64 {
	numerator := 0.0
	denominator := 0.0

	for i, mag := range magnitude {
		numerator += e.freqBins[i] * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// spectralRolloff computes the frequency below which rolloffThreshold of
// total spectral energy is contained
func (e *Extractor) spectralRolloff(magnitude []float64) float64 {
	totalEnergy := 0.0
	for _, mag := range magnitude {
		totalEnergy += mag * mag
	}

	if totalEnergy == 0 {
		return 0
	}

	targetEnergy := rolloffThreshold * totalEnergy
	cumulativeEnergy := 0.0

	for i, mag := range magnitude {
		cumulativeEnergy += mag * mag
		if cumulativeEnergy >= targetEnergy {
			return e.freqBins[i]
		}
	}

	return e.freqBins[len(e.freqBins)-1]
}

// spectralBandwidth computes the magnitude-weighted spread around the centroid
func (e *Extractor) spectralBandwidth(magnitude []float64, centroid float64) float64 {
	numerator := 0.0
	denominator := 0.0

	for i, mag := range magnitude {
		diff := e.freqBins[i] - centroid
		numerator += diff * diff * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0
	}
	return math.Sqrt(numerator / denominator)
}

// spectralFlux computes half-wave rectified flux against the previous frame
func spectralFlux(magnitude, prev []float64) float64 {
	if prev == nil {
		return 0
	}

	flux := 0.0
	for i := range magnitude {
		diff := magnitude[i] - prev[i]
		if diff > 0 {
			flux += diff
		}
	}
	return flux / float64(len(magnitude))
}

// pitchBounds returns the lowest and highest significant spectral peak
// frequencies within the pitch search range, or (0, 0) for a silent frame
func (e *Extractor) pitchBounds(magnitude []float64) (float64, float64) {
	maxMag := 0.0
	for i, mag := range magnitude {
		if e.freqBins[i] < pitchMinFreq || e.freqBins[i] > pitchMaxFreq {
			continue
		}
		if mag > maxMag {
			maxMag = mag
		}
	}

	if maxMag == 0 {
		return 0, 0
	}

	// Peaks within 10% of the frame maximum count as significant
	threshold := 0.1 * maxMag
	low, high := 0.0, 0.0

	for i := 1; i < len(magnitude)-1; i++ {
		freq := e.freqBins[i]
		if freq < pitchMinFreq || freq > pitchMaxFreq {
			continue
		}
		if magnitude[i] < threshold {
			continue
		}
		if magnitude[i] <= magnitude[i-1] || magnitude[i] < magnitude[i+1] {
			continue
		}
		if low == 0 || freq < low {
			low = freq
		}
		if freq > high {
			high = freq
		}
	}

	return low, high
}

// detectOnsets picks local maxima of the onset strength envelope that rise
// above one standard deviation over the mean
func detectOnsets(onsetStrength []float64) []int {
	if len(onsetStrength) < 3 {
		return nil
	}

	mean := stat.Mean(onsetStrength, nil)
	threshold := mean + stat.PopStdDev(onsetStrength, nil)

	var onsets []int
	for i := 1; i < len(onsetStrength)-1; i++ {
		if onsetStrength[i] <= threshold {
			continue
		}
		if onsetStrength[i] > onsetStrength[i-1] && onsetStrength[i] >= onsetStrength[i+1] {
			onsets = append(onsets, i)
		}
	}

	return onsets
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

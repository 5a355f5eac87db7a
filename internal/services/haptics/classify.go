package haptics

import "math"

// EventType is a haptic feedback category. The set is closed.
type EventType string

const (
	EventHeavy   EventType = "heavy"
	EventMedium  EventType = "medium"
	EventSharp   EventType = "sharp"
	EventLight   EventType = "light"
	EventRigid   EventType = "rigid"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
	EventWarning EventType = "warning"
	EventSoft    EventType = "soft"
)

// Classification thresholds, grouped by semantic role. Fixed design
// constants, not configurable.
const (
	// Bass detection (low centroid, high intensity)
	bassFreqCutoff     = 200.0 // Hz
	deepBassFreqCutoff = 100.0 // Hz

	// Treble detection (high centroid, high rolloff)
	trebleFreqCutoff     = 2000.0 // Hz
	highTrebleFreqCutoff = 3000.0 // Hz

	// Rigid/metallic detection (wide bandwidth, mid rolloff)
	rigidBandwidthMin     = 0.7
	veryRigidBandwidthMin = 0.84
	rigidRolloffMin       = 0.4
	rigidRolloffMax       = 0.6

	// Transition detection (deviation from the series mean)
	transitionDelta       = 0.4
	strongTransitionDelta = 0.6
)

// FrameFeatures is one output frame's smoothed feature tuple.
// Rolloff and bandwidth are unit-interval values; centroid is in Hz.
type FrameFeatures struct {
	RMS       float64
	Centroid  float64
	Rolloff   float64
	Bandwidth float64
}

// classifierRule pairs a predicate with its outcome. Rules are evaluated
// top-to-bottom with first-match-wins semantics, which makes the boundary
// behavior explicit: a value exactly at a threshold falls through to the
// next rule (every comparison is strict).
type classifierRule struct {
	match   func(f FrameFeatures, meanRMS float64) bool
	outcome func(f FrameFeatures) EventType
}

func fixed(t EventType) func(FrameFeatures) EventType {
	return func(FrameFeatures) EventType { return t }
}

// transitionOutcome maps rolloff to a transition category: bright spectra
// read as positive, dark as negative, everything else as neutral
func transitionOutcome(rolloffHigh, rolloffLow float64) func(FrameFeatures) EventType {
	return func(f FrameFeatures) EventType {
		switch {
		case f.Rolloff > rolloffHigh:
			return EventSuccess
		case f.Rolloff < rolloffLow:
			return EventError
		default:
			return EventWarning
		}
	}
}

var classifierRules = []classifierRule{
	{ // Very deep bass
		match: func(f FrameFeatures, _ float64) bool {
			return f.Centroid < deepBassFreqCutoff && f.RMS > 0.5 && f.RMS > 0.7
		},
		outcome: fixed(EventHeavy),
	},
	{ // Normal bass
		match: func(f FrameFeatures, _ float64) bool {
			return f.Centroid < bassFreqCutoff && f.RMS > 0.3 && f.RMS > 0.5
		},
		outcome: fixed(EventMedium),
	},
	{ // Very high-pitched sounds
		match: func(f FrameFeatures, _ float64) bool {
			return f.Centroid > highTrebleFreqCutoff && f.Rolloff > 0.7 && f.RMS > 0.4
		},
		outcome: fixed(EventSharp),
	},
	{ // High-pitched sounds
		match: func(f FrameFeatures, _ float64) bool {
			return f.Centroid > trebleFreqCutoff && f.Rolloff > 0.6 && f.RMS > 0.3
		},
		outcome: fixed(EventLight),
	},
	{ // Very rigid sounds
		match: func(f FrameFeatures, _ float64) bool {
			return f.Bandwidth > veryRigidBandwidthMin &&
				f.Rolloff > rigidRolloffMin && f.Rolloff < rigidRolloffMax && f.RMS > 0.5
		},
		outcome: fixed(EventRigid),
	},
	{ // Rigid sounds
		match: func(f FrameFeatures, _ float64) bool {
			return f.Bandwidth > rigidBandwidthMin &&
				f.Rolloff > rigidRolloffMin && f.Rolloff < rigidRolloffMax && f.RMS > 0.4
		},
		outcome: fixed(EventMedium),
	},
	{ // Strong intensity transition
		match: func(f FrameFeatures, meanRMS float64) bool {
			return math.Abs(f.RMS-meanRMS) > strongTransitionDelta && f.RMS > 0.6
		},
		outcome: transitionOutcome(0.7, 0.3),
	},
	{ // Intensity transition
		match: func(f FrameFeatures, meanRMS float64) bool {
			return math.Abs(f.RMS-meanRMS) > transitionDelta && f.RMS > 0.5
		},
		outcome: transitionOutcome(0.6, 0.4),
	},
	{ // Loud, broadband
		match: func(f FrameFeatures, _ float64) bool {
			return f.RMS > 0.7 && f.Bandwidth > 0.6
		},
		outcome: fixed(EventHeavy),
	},
	{ // Moderately loud, bright
		match: func(f FrameFeatures, _ float64) bool {
			return f.RMS > 0.4 && f.Rolloff > 0.5
		},
		outcome: fixed(EventMedium),
	},
	{ // Audible
		match: func(f FrameFeatures, _ float64) bool {
			return f.RMS > 0.2
		},
		outcome: fixed(EventLight),
	},
}

// Classify maps one frame's smoothed features (plus the global mean of the
// smoothed RMS series) to a haptic category. Pure function: no state, same
// inputs always give the same category.
func Classify(f FrameFeatures, meanRMS float64) EventType {
	for _, rule := range classifierRules {
		if rule.match(f, meanRMS) {
			return rule.outcome(f)
		}
	}
	return EventSoft
}

package haptics

import "errors"

var (
	// ErrUnsupportedSource is returned when the source extension is not in
	// the audio/video allow-lists
	ErrUnsupportedSource = errors.New("unsupported source file type")

	// ErrDurationUnavailable is returned when the media duration cannot be
	// determined; a zero-frame timeline is meaningless
	ErrDurationUnavailable = errors.New("could not determine media duration")

	// ErrDegenerateSeries is returned when a feature series is empty or the
	// output frame grid has zero length
	ErrDegenerateSeries = errors.New("degenerate feature series")
)

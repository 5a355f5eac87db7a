package models

import (
	"reflect"
	"testing"

	"github.com/killallgit/haptic-api/internal/services/haptics"
)

func TestTimeline_SetAndGetEvents(t *testing.T) {
	tests := []struct {
		name    string
		events  []haptics.Event
		wantErr bool
	}{
		{
			name: "normal events",
			events: []haptics.Event{
				{Time: 0, Intensity: 1, Sharpness: 0.5, Type: haptics.EventHeavy},
				{Time: 0.033, Intensity: 0.8, Sharpness: 0.2, Type: haptics.EventMedium},
			},
			wantErr: false,
		},
		{
			name:    "empty events",
			events:  []haptics.Event{},
			wantErr: false,
		},
		{
			name:    "single event",
			events:  []haptics.Event{{Time: 1.5, Intensity: 0.5, Sharpness: 0.5, Type: haptics.EventSoft}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := &Timeline{}

			err := tl.SetEvents(tt.events)
			if (err != nil) != tt.wantErr {
				t.Errorf("Timeline.SetEvents() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}

			gotEvents, err := tl.Events()
			if err != nil {
				t.Errorf("Timeline.Events() error = %v", err)
				return
			}

			if !reflect.DeepEqual(gotEvents, tt.events) {
				t.Errorf("Timeline.Events() = %v, want %v", gotEvents, tt.events)
			}
		})
	}
}

func TestTimeline_EventsWithInvalidData(t *testing.T) {
	tl := &Timeline{
		EventsData: []byte("invalid json data"),
	}

	_, err := tl.Events()
	if err == nil {
		t.Error("Timeline.Events() expected error with invalid JSON data, got nil")
	}
}

func TestTimeline_FromTimeline(t *testing.T) {
	artifact := haptics.Assemble([]haptics.Event{
		{Time: 0, Intensity: 1, Sharpness: 1, Type: haptics.EventHeavy},
	}, 60, 2.0, 120, "/media/tone.wav", haptics.SourceAudio)

	tl := &Timeline{}
	if err := tl.FromTimeline("/media/tone.wav", artifact); err != nil {
		t.Fatalf("Timeline.FromTimeline() error = %v", err)
	}

	if tl.SourcePath != "/media/tone.wav" {
		t.Errorf("Timeline.SourcePath = %v, want /media/tone.wav", tl.SourcePath)
	}
	if tl.FPS != 60 {
		t.Errorf("Timeline.FPS = %v, want 60", tl.FPS)
	}
	if tl.Duration != 2.0 {
		t.Errorf("Timeline.Duration = %v, want 2.0", tl.Duration)
	}
	if tl.TotalFrames != 120 {
		t.Errorf("Timeline.TotalFrames = %v, want 120", tl.TotalFrames)
	}
	if tl.FileType != "audio" {
		t.Errorf("Timeline.FileType = %v, want audio", tl.FileType)
	}

	events, err := tl.Events()
	if err != nil {
		t.Fatalf("Timeline.Events() error = %v", err)
	}
	if len(events) != 1 || events[0].Type != haptics.EventHeavy {
		t.Errorf("Timeline.Events() = %v, want single heavy event", events)
	}
}

package cmd

import (
	"strings"
	"testing"
)

func TestAnalyzeCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "analyze command with help",
			args:           []string{"analyze", "--help"},
			wantErr:        false,
			expectedOutput: "Analyze an audio or video file",
		},
		{
			name:    "analyze command without input",
			args:    []string{"analyze"},
			wantErr: true,
		},
		{
			name:    "analyze command with missing file",
			args:    []string{"analyze", "/no/such/file.mp3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(output, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, output)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "song.mp3", want: "song_haptics.json"},
		{input: "/media/clips/video.mp4", want: "/media/clips/video_haptics.json"},
		{input: "noextension", want: "noextension_haptics.json"},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.input); got != tt.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

package cmd

import (
	"strings"
	"testing"
)

func TestServeCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "serve command with help",
			args:           []string{"serve", "--help"},
			wantErr:        false,
			expectedOutput: "Start the Haptic API server",
		},
		{
			name:    "serve command with invalid port",
			args:    []string{"serve", "--port", "invalid"},
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

func TestServeFlags(t *testing.T) {
	if serveCmd.Flags().Lookup("host") == nil {
		t.Error("Expected serve command to have a host flag")
	}
	if serveCmd.Flags().Lookup("port") == nil {
		t.Error("Expected serve command to have a port flag")
	}
}

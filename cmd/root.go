package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/haptic-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "haptic-api",
	Short: "Haptic timeline generator",
	Long: `Haptic API - generates haptic event timelines from audio and video files

Audio is decoded with ffmpeg, analyzed frame by frame, and turned into a
timeline of typed haptic events (heavy, sharp, light, ...) with intensity
and sharpness values, ready for playback on haptic hardware.

Features:
  • Audio and video input (audio track extracted automatically)
  • Spectral feature extraction and event classification
  • JSON timeline output at a configurable frame rate
  • HTTP API with timeline caching`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

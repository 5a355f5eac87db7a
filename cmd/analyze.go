package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/haptic-api/internal/services/features"
	"github.com/killallgit/haptic-api/internal/services/haptics"
	"github.com/killallgit/haptic-api/pkg/config"
	"github.com/killallgit/haptic-api/pkg/ffmpeg"
)

var (
	analyzeOutput string
	analyzeFPS    int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <input>",
	Short: "Generate a haptic timeline from a media file",
	Long: `Analyze an audio or video file and write a haptic event timeline as JSON.

The input is decoded to mono PCM with ffmpeg, spectral features are extracted
frame by frame, and each significant frame becomes a typed haptic event with
an intensity and sharpness value.

Example:
  haptic-api analyze song.mp3
  haptic-api analyze clip.mp4 -o clip_haptics.json
  haptic-api analyze song.wav --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output JSON path (default <input>_haptics.json)")
	analyzeCmd.Flags().IntVar(&analyzeFPS, "fps", 0, "timeline frame rate (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("cannot read input file %s: %w", input, err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	fps := cfg.Processing.FPS
	if analyzeFPS > 0 {
		fps = analyzeFPS
	}

	media := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := media.ValidateBinaries(); err != nil {
		return err
	}

	extractor := features.NewExtractor(cfg.Processing.SampleRate, cfg.Processing.HopLength)
	analyzer := haptics.NewAnalyzer(media, extractor, haptics.Options{
		FPS:        fps,
		SampleRate: cfg.Processing.SampleRate,
		HopLength:  cfg.Processing.HopLength,
		TempDir:    cfg.Storage.TempDir,
	})

	timeline, err := analyzer.Analyze(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	output := analyzeOutput
	if output == "" {
		output = defaultOutputPath(input)
	}

	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events (%d frames at %d fps) to %s\n",
		len(timeline.Events), timeline.Metadata.TotalFrames, timeline.Metadata.FPS, output)

	return nil
}

// defaultOutputPath derives the output filename from the input path
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_haptics.json"
}

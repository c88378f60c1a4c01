package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tala/internal/audio"
	"tala/internal/editor"
	"tala/internal/project"
	"tala/internal/subtitle"
	"tala/internal/transcribe"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Generate captions for an audio or video file",
	Long: `Generate captions for the specified media file using AI transcription.

The audio track is decoded, downmixed to mono, resampled to 16 kHz, and
submitted as uncompressed WAV. The resulting captions are saved as a project
in the local store and can optionally be exported to SRT right away.

Examples:
  tala generate video.mp4
  tala generate audio.mp3 --project podcast -o podcast.srt
  tala generate video.mp4 --api-key YOUR_KEY --settings project.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringP("api-key", "k", "", "Gemini API key (or set GEMINI_API_KEY env var)")
	generateCmd.Flags().
		String("model", "", "Gemini model to use for transcription")
	generateCmd.Flags().
		String("project", "", "Project name in the store (defaults to the media file name)")
	generateCmd.Flags().
		String("settings", "", "Path to a YAML project settings file")
	generateCmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting long audio")
	generateCmd.Flags().
		Int("concurrency", 3, "Number of chunks transcribed in parallel")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	projectName, _ := cmd.Flags().GetString("project")
	settingsPath, _ := cmd.Flags().GetString("settings")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")
	storeRoot, _ := cmd.Flags().GetString("store")
	userID, _ := cmd.Flags().GetString("user")
	chunkMinutes, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Gemini API key is required: use --api-key flag or set GEMINI_API_KEY environment variable")
	}

	if projectName == "" {
		projectName = strings.TrimSuffix(
			filepath.Base(mediaPath),
			filepath.Ext(mediaPath),
		)
	}

	settings := project.DefaultSettings()
	if settingsPath != "" {
		var err error
		settings, err = project.LoadSettings(settingsPath)
		if err != nil {
			return err
		}
	}

	logger.Infow("Starting caption generation",
		"input", mediaPath,
		"project", projectName,
	)

	chunks, err := audio.PreprocessChunks(ctx, mediaPath, time.Duration(chunkMinutes)*time.Minute)
	if err != nil {
		return err
	}

	logger.Infow("Audio prepared",
		"chunks", len(chunks),
	)

	transcriber, err := transcribe.Factory(ctx, transcribe.ProviderGemini, apiKey, transcribe.Options{
		Language: language,
		Model:    model,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	ct, ok := transcriber.(transcribe.ConcurrentTranscriber)
	if !ok {
		return fmt.Errorf("provider does not support chunked transcription")
	}

	ed := editor.New()
	epoch := ed.Epoch()

	result, err := ct.TranscribeChunks(ctx, chunks, concurrency)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	ed.ApplyTranscription(epoch, result.Items, settings)

	logger.Infow("Transcription complete",
		"events", ed.Document().Len(),
		"language", result.Language,
	)

	store := project.NewStore(storeRoot)
	sess := project.Session{UserID: userID}
	if err := store.Save(sess, projectName, ed.Document().Snapshot(), filepath.Base(mediaPath)); err != nil {
		return err
	}

	if outputPath != "" {
		if err := subtitle.WriteSRT(ed.Document(), outputPath); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
	}

	fmt.Printf("Captions generated: project %q (%d events)\n", projectName, ed.Document().Len())
	return nil
}

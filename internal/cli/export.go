package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tala/internal/caption"
	"tala/internal/project"
	"tala/internal/subtitle"
)

var exportCmd = &cobra.Command{
	Use:   "export [project]",
	Short: "Export a project's captions to an SRT file",
	Long: `Export the captions of a stored project in SubRip (SRT) format.

Events are written sorted by start time with a fresh 1-based index.

Examples:
  tala export podcast
  tala export podcast -o subs/podcast.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	outputPath, _ := cmd.Flags().GetString("output")
	storeRoot, _ := cmd.Flags().GetString("store")

	if outputPath == "" {
		outputPath = projectName + ".srt"
	}

	store := project.NewStore(storeRoot)
	record, err := store.Load(projectName)
	if err != nil {
		return err
	}

	doc := caption.NewDocumentFromEvents(record.Events)
	if err := subtitle.WriteSRT(doc, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Exported %d captions to %s\n", doc.Len(), absOutput)
	return nil
}

package cli

import (
	"tala/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tala",
	Short: "AI-assisted caption timeline editor",
	Long: `Tala keeps timed captions in sync with a media timeline.

It generates captions from a media file via AI transcription, translates
them, applies timeline corrections, and exports standard SRT subtitles.
Projects are stored locally and can be reopened for further editing.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
	rootCmd.PersistentFlags().
		String("store", ".tala", "Project store directory")
	rootCmd.PersistentFlags().
		String("user", "local", "User identifier for saved projects")
}

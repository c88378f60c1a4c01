package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tala/internal/editor"
	"tala/internal/project"
	"tala/internal/subtitle"
	"tala/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [project]",
	Short: "Translate a project's captions to another language using AI",
	Long: `Translate the captions of a stored project to another language.

Translated text replaces each caption's display text; the original text is
kept alongside it the first time a caption is translated. Captions the
service fails to return come back unchanged, so no work is lost.

Examples:
  tala translate podcast --target-language japanese
  tala translate podcast -t spanish --provider anthropic -o podcast.es.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific defaults)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("batch-size", translate.DefaultBatchSize, "Number of captions per API request")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of batches translated in parallel")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	projectName := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	providerStr, _ := cmd.Flags().GetString("provider")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")
	storeRoot, _ := cmd.Flags().GetString("store")
	userID, _ := cmd.Flags().GetString("user")

	if inputLang != "" &&
		strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(providerStr)

	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	store := project.NewStore(storeRoot)
	record, err := store.Load(projectName)
	if err != nil {
		return err
	}

	ed := editor.New()
	ed.Load(record.Events)
	epoch := ed.Epoch()

	translator, err := translate.Factory(ctx, provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := ed.TranslationItems()

	logger.Infow("Translating captions",
		"project", projectName,
		"events", len(items),
		"target_language", targetLang,
		"provider", providerStr,
	)

	var results []translate.Item
	if ct, ok := translator.(translate.ConcurrentTranslator); ok && concurrency > 1 {
		results, err = ct.TranslateWithConcurrency(ctx, items, concurrency)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	ed.ApplyTranslation(epoch, results)

	sess := project.Session{UserID: userID}
	if err := store.Save(sess, projectName, ed.Document().Snapshot(), record.MediaName); err != nil {
		return err
	}

	if outputPath != "" {
		if err := subtitle.WriteSRT(ed.Document(), outputPath); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}
	}

	fmt.Printf("Translated %d captions in project %q\n", len(results), projectName)
	return nil
}

func apiKeyEnvVar(provider translate.Provider) string {
	switch provider {
	case translate.ProviderGemini:
		return "GEMINI_API_KEY"
	case translate.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case translate.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

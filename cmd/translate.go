package cmd

import (
	"context"
	"fmt"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/pkg/config"
	"github.com/spf13/cobra"
)

var translateLangs []string

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate all stored sections",
	Long: `Translate every stored section into the target languages, skipping
sections whose translation is already current. Failures for individual
sections are reported but do not stop the run.

Example:
  django-voice translate
  django-voice translate --lang sw --lang fr`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringSliceVar(&translateLangs, "lang", []string{"sw", "fr"}, "target language codes")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	langs := make([]models.Language, 0, len(translateLangs))
	for _, code := range translateLangs {
		if !models.IsSupportedLanguage(code) {
			return fmt.Errorf("unsupported language %q, expected one of en, sw, fr", code)
		}
		langs = append(langs, models.Language(code))
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	deps, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	count, err := deps.TranslationService.TranslateAll(context.Background(), langs)
	if err != nil {
		fmt.Printf("Translated %d sections with failures: %v\n", count, err)
		return err
	}

	fmt.Printf("Translated %d sections\n", count)
	return nil
}

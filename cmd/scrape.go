package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/GloryMsasalaga/django-voice/internal/services/scheduler"
	"github.com/GloryMsasalaga/django-voice/pkg/config"
	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape pass over all seed pages",
	Long: `Fetch every configured documentation page, extract its sections and
store them. Unchanged pages are detected by content hash and skipped.

The same file lock guards this command and the server's scheduler, so a
manual run cannot overlap a scheduled one.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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

	summary, err := deps.Scheduler.Run(context.Background())
	if err != nil {
		if errors.Is(err, scheduler.ErrRunInProgress) {
			return fmt.Errorf("another scrape run is already in progress")
		}
		return err
	}

	fmt.Printf("Scrape complete: %d fetched, %d updated, %d unchanged, %d failed (%s)\n",
		summary.Fetched, summary.Updated, summary.Unchanged, summary.Failed, summary.Duration)

	if summary.Failed > 0 {
		return fmt.Errorf("%d pages failed to scrape", summary.Failed)
	}
	return nil
}

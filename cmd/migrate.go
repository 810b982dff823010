package cmd

import (
	"fmt"

	"github.com/GloryMsasalaga/django-voice/pkg/config"
	"github.com/spf13/cobra"
)

// migrateCmd applies the current schema to the database
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Create or update the database schema to match the current models.

Uses gorm AutoMigrate: new tables, columns and indexes are added, existing
columns are never dropped.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Schema is up to date at %s\n", cfg.Database.Path)
	return nil
}

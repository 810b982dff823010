package cmd

import (
	"fmt"
	"os"

	"github.com/GloryMsasalaga/django-voice/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "django-voice",
	Short: "Voice-enabled Django documentation service",
	Long: `Django Voice Docs - a documentation assistant API

Scrapes the official Django documentation, stores it section by section,
translates it into Swahili and French, and serves spoken audio for every
section over HTTP.

Features:
  • Weekly documentation scraping with change detection
  • Section-level translation (English, Swahili, French)
  • Cached text-to-speech synthesis
  • Keyword search and voice command dispatch`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig initializes configuration for commands that need it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GloryMsasalaga/django-voice/api"
	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the documentation API server with the configured settings.

The server serves documents, search, audio playback and voice commands,
and runs the scrape scheduler and background workers alongside.

Example:
  django-voice serve
  django-voice serve --port 9090
  django-voice serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
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
	if stopper, ok := deps.ResponseCache.(interface{ Stop() }); ok {
		defer stopper.Stop()
	}

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	// Background machinery runs for the lifetime of the process
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := deps.WorkerPool.Start(ctx); err != nil {
		return fmt.Errorf("starting workers: %w", err)
	}
	defer deps.WorkerPool.Stop()

	if cfg.Scheduler.Enabled {
		deps.Scheduler.Start(ctx)
		defer deps.Scheduler.Stop()
	}

	go runMaintenance(ctx, cfg, deps)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s", address)

	select {
	case <-stop:
		log.Printf("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return nil
}

// runMaintenance periodically prunes stale audio assets and terminal jobs
func runMaintenance(ctx context.Context, cfg *config.Config, deps *types.Dependencies) {
	interval := cfg.Storage.CleanupInterval
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := deps.SpeechService.CleanupOld(ctx, cfg.Storage.MaxAudioAgeDays); err != nil {
				log.Printf("[WARN] Audio cleanup failed: %v", err)
			}
			if _, err := deps.JobService.CleanupOldJobs(ctx, 7*24*time.Hour); err != nil {
				log.Printf("[WARN] Job cleanup failed: %v", err)
			}
		}
	}
}

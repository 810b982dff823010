package cmd

import (
	"fmt"

	"github.com/GloryMsasalaga/django-voice/api/types"
	"github.com/GloryMsasalaga/django-voice/internal/database"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/cache"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/jobs"
	"github.com/GloryMsasalaga/django-voice/internal/services/scheduler"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
	"github.com/GloryMsasalaga/django-voice/internal/services/speech"
	"github.com/GloryMsasalaga/django-voice/internal/services/translations"
	"github.com/GloryMsasalaga/django-voice/internal/services/voice"
	"github.com/GloryMsasalaga/django-voice/internal/services/workers"
	"github.com/GloryMsasalaga/django-voice/pkg/config"
)

// openDatabase initializes the database and migrates the schema
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Document{},
		&models.Section{},
		&models.Translation{},
		&models.AudioAsset{},
		&models.Job{},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

// buildDependencies wires every service from config and an open database
func buildDependencies(cfg *config.Config, db *database.DB) (*types.Dependencies, error) {
	documentRepo := documents.NewRepository(db.DB)
	documentService := documents.NewService(documentRepo)

	translator := translations.NewClient(translations.ClientConfig{
		Endpoint:          cfg.Translation.Endpoint,
		APIKey:            cfg.Translation.APIKey,
		Timeout:           cfg.Translation.Timeout,
		RequestsPerMinute: cfg.Translation.RequestsPerMinute,
	})
	translationService := translations.NewService(
		translator,
		translations.NewRepository(db.DB),
		translations.WithMaxConcurrent(cfg.Translation.MaxConcurrent),
	)

	audioStorage, err := speech.NewFilesystemStorage(cfg.Storage.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("initializing audio storage: %w", err)
	}
	synthesizer := speech.NewClient(speech.ClientConfig{
		Endpoint:          cfg.Speech.Endpoint,
		Timeout:           cfg.Speech.Timeout,
		RequestsPerMinute: cfg.Speech.RequestsPerMinute,
	})
	speechService := speech.NewService(synthesizer, speech.NewRepository(db.DB), audioStorage)

	jobRepo := jobs.NewRepository(db.DB, jobs.WithRetryDelay(cfg.Processing.RetryDelay))
	jobService := jobs.NewService(jobRepo)

	fetcher := scraper.NewClient(scraper.Config{
		UserAgent:         cfg.Scraper.UserAgent,
		Timeout:           cfg.Scraper.Timeout,
		MaxRetries:        cfg.Scraper.MaxRetries,
		RetryBackoff:      cfg.Scraper.RetryBackoff,
		RequestsPerMinute: cfg.Scraper.RequestsPerMinute,
	})

	sched := scheduler.New(scheduler.Options{
		Interval:    cfg.Scheduler.Interval,
		LockFile:    cfg.Scheduler.LockFile,
		SeedURLs:    cfg.Scraper.SeedURLs,
		RunOnStart:  cfg.Scheduler.RunOnStart,
		Pregenerate: cfg.Speech.Pregenerate,
	}, fetcher, documentService, jobService)

	deps := &types.Dependencies{
		DB:                 db,
		DocumentService:    documentService,
		TranslationService: translationService,
		SpeechService:      speechService,
		VoiceProcessor:     voice.NewProcessor(documentService, translationService),
		Scheduler:          sched,
		JobService:         jobService,
	}

	if cfg.Cache.Enabled {
		deps.ResponseCache = cache.NewMemory(cfg.Cache.MaxSizeMB)
		deps.SearchCacheTTL = cfg.Cache.SearchTTL
		deps.SectionCacheTTL = cfg.Cache.SectionTTL
	}

	pool := workers.NewWorkerPool(jobService, cfg.Processing.Workers, cfg.Processing.PollInterval)
	pool.RegisterProcessor(workers.NewTranslationProcessor(documentService, translationService))
	pool.RegisterProcessor(workers.NewSpeechProcessor(documentService, translationService, speechService))
	deps.WorkerPool = pool

	return deps, nil
}

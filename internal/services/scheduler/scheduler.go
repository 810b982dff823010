package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/jobs"
	"github.com/GloryMsasalaga/django-voice/internal/services/scraper"
	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when a scrape run overlaps a running one
var ErrRunInProgress = errors.New("scrape run already in progress")

// RunSummary reports the outcome of a single scrape run
type RunSummary struct {
	Started   time.Time `json:"started"`
	Duration  string    `json:"duration"`
	Fetched   int       `json:"fetched"`
	Unchanged int       `json:"unchanged"`
	Updated   int       `json:"updated"`
	Failed    int       `json:"failed"`
}

// Options configures the scheduler
type Options struct {
	Interval    time.Duration
	LockFile    string
	SeedURLs    []string
	RunOnStart  bool
	Pregenerate bool
}

// Scheduler periodically refreshes all seed documents. Overlapping runs are
// suppressed with an in-process mutex plus a file lock shared with the CLI.
type Scheduler struct {
	opts            Options
	fetcher         *scraper.Client
	documentService documents.DocumentService
	jobService      jobs.Service

	mu       sync.Mutex
	fileLock *flock.Flock
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a scheduler
func New(opts Options, fetcher *scraper.Client, documentService documents.DocumentService, jobService jobs.Service) *Scheduler {
	return &Scheduler{
		opts:            opts,
		fetcher:         fetcher,
		documentService: documentService,
		jobService:      jobService,
		fileLock:        flock.New(opts.LockFile),
		stopChan:        make(chan struct{}),
	}
}

// Start begins the periodic scrape loop in a goroutine
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop stops the loop and waits for any in-flight run to finish
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	log.Printf("[INFO] Scheduler starting with interval %s", s.opts.Interval)
	defer log.Printf("[INFO] Scheduler stopped")

	if s.opts.RunOnStart {
		s.runLogged(ctx)
	}

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runLogged(ctx)
		}
	}
}

func (s *Scheduler) runLogged(ctx context.Context) {
	summary, err := s.Run(ctx)
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			log.Printf("[WARN] Scheduled scrape skipped: previous run still in progress")
			return
		}
		log.Printf("[ERROR] Scheduled scrape failed: %v", err)
		return
	}
	log.Printf("[INFO] Scrape run complete: %d fetched, %d updated, %d unchanged, %d failed (%s)",
		summary.Fetched, summary.Updated, summary.Unchanged, summary.Failed, summary.Duration)
}

// Run executes one scrape pass over every seed URL. It returns
// ErrRunInProgress when another run holds the lock. Failures on individual
// documents are counted and logged, never fatal for the run.
func (s *Scheduler) Run(ctx context.Context) (*RunSummary, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	locked, err := s.fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring scrape lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.fileLock.Unlock(); err != nil {
			log.Printf("[WARN] Releasing scrape lock: %v", err)
		}
	}()

	start := time.Now()
	summary := &RunSummary{Started: start}

	for _, url := range s.opts.SeedURLs {
		select {
		case <-ctx.Done():
			summary.Duration = time.Since(start).String()
			return summary, ctx.Err()
		default:
		}

		if err := s.syncURL(ctx, url, summary); err != nil {
			summary.Failed++
			log.Printf("[ERROR] Scraping %s: %v", url, err)
		}
	}

	summary.Duration = time.Since(start).String()
	return summary, nil
}

// syncURL fetches one page, extracts its sections and stores them. Unchanged
// pages are recorded without a store write. Updated documents get a
// translation sync job, and optionally speech pre-generation jobs.
func (s *Scheduler) syncURL(ctx context.Context, url string, summary *RunSummary) error {
	var prevHash, prevETag string
	existing, err := s.documentService.GetDocumentBySourceURL(ctx, url)
	if err == nil && existing != nil {
		prevHash = existing.ContentHash
		prevETag = existing.ETag
	}

	fetched, err := s.fetcher.FetchIfChanged(ctx, url, prevHash, prevETag)
	if err != nil {
		if errors.Is(err, scraper.ErrNotModified) {
			summary.Fetched++
			summary.Unchanged++
			return s.documentService.MarkUnchanged(ctx, url)
		}
		return err
	}
	summary.Fetched++

	iter, err := scraper.Extract(fetched.Body, url)
	if err != nil {
		return err
	}

	changed, err := s.documentService.SyncDocument(ctx, fetched, iter.Title(), iter.All())
	if err != nil {
		return err
	}
	if !changed {
		summary.Unchanged++
		return nil
	}
	summary.Updated++

	doc, err := s.documentService.GetDocumentBySourceURL(ctx, url)
	if err != nil {
		return err
	}

	if _, err := s.jobService.EnqueueUniqueJob(ctx, models.JobTypeTranslationSync,
		models.JobPayload{"document_id": doc.ID}, "document_id"); err != nil {
		log.Printf("[WARN] Enqueueing translation sync for document %d: %v", doc.ID, err)
	}

	if s.opts.Pregenerate {
		s.enqueueSpeechJobs(ctx, doc.ID)
	}

	return nil
}

func (s *Scheduler) enqueueSpeechJobs(ctx context.Context, documentID uint) {
	sections, err := s.documentService.GetSectionsByDocumentID(ctx, documentID)
	if err != nil {
		log.Printf("[WARN] Loading sections for speech pre-generation: %v", err)
		return
	}

	for _, section := range sections {
		for lang := range models.SupportedLanguages {
			payload := models.JobPayload{
				"section_id": section.ID,
				"language":   string(lang),
			}
			if _, err := s.jobService.EnqueueJob(ctx, models.JobTypeSpeechSynthesis, payload); err != nil {
				log.Printf("[WARN] Enqueueing speech job for section %d: %v", section.ID, err)
			}
		}
	}
}

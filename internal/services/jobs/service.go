package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
)

const DefaultMaxRetries = 3

type service struct {
	repo Repository
}

// NewService creates a new job queue service
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload) (*models.Job, error) {
	job := &models.Job{
		Type:       jobType,
		Status:     models.JobStatusPending,
		Payload:    payload,
		MaxRetries: DefaultMaxRetries,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	log.Printf("[DEBUG] Enqueued %s job ID %d", jobType, job.ID)

	return job, nil
}

// EnqueueUniqueJob enqueues a job unless an equivalent non-terminal one
// already exists, in which case the existing job is returned.
func (s *service) EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string) (*models.Job, error) {
	uniqueValue, ok := payload[uniqueKey]
	if !ok {
		return nil, fmt.Errorf("unique key %s not found in payload", uniqueKey)
	}

	existingJob, err := s.repo.GetJobByTypeAndPayload(ctx, jobType, uniqueKey, fmt.Sprintf("%v", uniqueValue))
	if err == nil && existingJob != nil && !existingJob.IsTerminal() {
		log.Printf("[DEBUG] Job already exists for %s with %s=%v (ID: %d, Status: %s)",
			jobType, uniqueKey, uniqueValue, existingJob.ID, existingJob.Status)
		return existingJob, nil
	}

	return s.EnqueueJob(ctx, jobType, payload)
}

func (s *service) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

func (s *service) ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error) {
	job, err := s.repo.ClaimNextJob(ctx, workerID, jobTypes)
	if err != nil {
		if errors.Is(err, ErrNoJobsAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("claiming job: %w", err)
	}

	log.Printf("[DEBUG] Worker %s claimed %s job ID %d", workerID, job.Type, job.ID)

	return job, nil
}

func (s *service) CompleteJob(ctx context.Context, jobID uint) error {
	if err := s.repo.CompleteJob(ctx, jobID); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("completing job: %w", err)
	}

	log.Printf("[DEBUG] Job %d completed successfully", jobID)

	return nil
}

func (s *service) FailJob(ctx context.Context, jobID uint, jobErr error) error {
	if err := s.repo.FailJob(ctx, jobID, jobErr.Error()); err != nil {
		if errors.Is(err, ErrJobNotFound) {
			return err
		}
		return fmt.Errorf("failing job: %w", err)
	}

	log.Printf("[WARN] Job %d failed: %v", jobID, jobErr)

	return nil
}

func (s *service) CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error) {
	deleted, err := s.repo.DeleteOldJobs(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("cleaning up old jobs: %w", err)
	}

	if deleted > 0 {
		log.Printf("[INFO] Cleaned up %d old jobs", deleted)
	}

	return deleted, nil
}

package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
)

// Repository errors
var (
	ErrJobNotFound     = errors.New("job not found")
	ErrNoJobsAvailable = errors.New("no jobs available")
)

// Repository defines the interface for job persistence
type Repository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, jobID uint) (*models.Job, error)
	GetJobByTypeAndPayload(ctx context.Context, jobType models.JobType, key, value string) (*models.Job, error)
	GetJobsByStatus(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error)
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	CompleteJob(ctx context.Context, jobID uint) error
	FailJob(ctx context.Context, jobID uint, errorMsg string) error
	DeleteOldJobs(ctx context.Context, olderThan time.Time) (int64, error)
}

// Service defines the business logic for the job queue
type Service interface {
	EnqueueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload) (*models.Job, error)
	EnqueueUniqueJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, uniqueKey string) (*models.Job, error)
	GetJob(ctx context.Context, jobID uint) (*models.Job, error)
	ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error)
	CompleteJob(ctx context.Context, jobID uint) error
	FailJob(ctx context.Context, jobID uint, jobErr error) error
	CleanupOldJobs(ctx context.Context, retention time.Duration) (int64, error)
}

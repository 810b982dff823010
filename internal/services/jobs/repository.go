package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultRetryDelay = 30 * time.Second

// repository implements Repository interface
type repository struct {
	db         *gorm.DB
	retryDelay time.Duration
}

// RepositoryOption configures the repository
type RepositoryOption func(*repository)

// WithRetryDelay sets the minimum wait before a failed job may be reclaimed
func WithRetryDelay(d time.Duration) RepositoryOption {
	return func(r *repository) {
		if d > 0 {
			r.retryDelay = d
		}
	}
}

// NewRepository creates a new job repository
func NewRepository(db *gorm.DB, opts ...RepositoryOption) Repository {
	r := &repository{
		db:         db,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateJob creates a new job
func (r *repository) CreateJob(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJob retrieves a job by ID
func (r *repository) GetJob(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job: %w", err)
	}
	return &job, nil
}

// GetJobByTypeAndPayload finds a job by type and a specific payload value
func (r *repository) GetJobByTypeAndPayload(ctx context.Context, jobType models.JobType, key, value string) (*models.Job, error) {
	var job models.Job

	// json_extract yields a typed value; cast to text so numeric payload
	// values still match the stringified lookup value
	err := r.db.WithContext(ctx).
		Where("type = ?", jobType).
		Where("CAST(json_extract(payload, ?) AS TEXT) = ?", "$."+key, value).
		Order("created_at DESC").
		First(&job).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("getting job by type and payload: %w", err)
	}

	return &job, nil
}

// GetJobsByStatus retrieves jobs by status
func (r *repository) GetJobsByStatus(ctx context.Context, status models.JobStatus, limit int) ([]*models.Job, error) {
	var jobs []*models.Job
	query := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&jobs).Error
	return jobs, err
}

// ClaimNextJob atomically claims the next available job for a worker
func (r *repository) ClaimNextJob(ctx context.Context, workerID string, jobTypes []models.JobType) (*models.Job, error) {
	var job models.Job

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Pending jobs are always claimable; failed jobs only while
		// retries remain and after the backoff delay has elapsed.
		retryCutoff := time.Now().Add(-r.retryDelay)
		query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(status = ? OR (status = ? AND retry_count < max_retries AND (last_failed_at IS NULL OR last_failed_at <= ?)))",
				models.JobStatusPending, models.JobStatusFailed, retryCutoff)

		if len(jobTypes) > 0 {
			query = query.Where("type IN ?", jobTypes)
		}

		err := query.Order("created_at ASC").First(&job).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoJobsAvailable
			}
			return fmt.Errorf("finding job to claim: %w", err)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     models.JobStatusProcessing,
			"worker_id":  workerID,
			"started_at": &now,
		}

		wasFailed := job.Status == models.JobStatusFailed
		if wasFailed {
			updates["retry_count"] = job.RetryCount + 1
		}

		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return fmt.Errorf("updating claimed job: %w", err)
		}

		job.Status = models.JobStatusProcessing
		job.WorkerID = workerID
		job.StartedAt = &now
		if wasFailed {
			job.RetryCount++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &job, nil
}

// CompleteJob marks a job as completed
func (r *repository) CompleteJob(ctx context.Context, jobID uint) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(map[string]interface{}{
			"status":       models.JobStatusCompleted,
			"completed_at": &now,
			"error":        "",
		})

	if res.Error != nil {
		return fmt.Errorf("completing job: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// FailJob marks a job as failed with an error message. Jobs that have
// exhausted their retries become permanently failed.
func (r *repository) FailJob(ctx context.Context, jobID uint, errorMsg string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("finding job to fail: %w", err)
		}

		status := models.JobStatusFailed
		if job.RetryCount >= job.MaxRetries {
			status = models.JobStatusPermanentlyFailed
		}

		now := time.Now()
		err := tx.Model(&job).Updates(map[string]interface{}{
			"status":         status,
			"error":          errorMsg,
			"last_failed_at": &now,
		}).Error
		if err != nil {
			return fmt.Errorf("failing job: %w", err)
		}

		return nil
	})
}

// DeleteOldJobs removes terminal jobs older than the given time
func (r *repository) DeleteOldJobs(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status IN ?", []models.JobStatus{models.JobStatusCompleted, models.JobStatusPermanentlyFailed}).
		Where("updated_at < ?", olderThan).
		Unscoped().
		Delete(&models.Job{})

	if res.Error != nil {
		return 0, fmt.Errorf("deleting old jobs: %w", res.Error)
	}

	return res.RowsAffected, nil
}

package workers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/database"
	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	jobType   models.JobType
	processed []*models.Job
	err       error
}

func (m *mockProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	m.processed = append(m.processed, job)
	return m.err
}

func (m *mockProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == m.jobType
}

func setupJobService(t *testing.T) jobs.Service {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&models.Job{}))

	return jobs.NewService(jobs.NewRepository(db.DB))
}

func TestProcessNextJobCompletes(t *testing.T) {
	jobService := setupJobService(t)
	ctx := context.Background()

	enqueued, err := jobService.EnqueueJob(ctx, models.JobTypeTranslationSync, models.JobPayload{"document_id": 1})
	require.NoError(t, err)

	processor := &mockProcessor{jobType: models.JobTypeTranslationSync}
	worker := NewWorker("test-worker", jobService, time.Second)
	worker.RegisterProcessor(processor)

	require.NoError(t, worker.processNextJob(ctx))
	require.Len(t, processor.processed, 1)
	assert.Equal(t, enqueued.ID, processor.processed[0].ID)

	stored, err := jobService.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, stored.Status)
}

func TestProcessNextJobFailureMarksJobFailed(t *testing.T) {
	jobService := setupJobService(t)
	ctx := context.Background()

	enqueued, err := jobService.EnqueueJob(ctx, models.JobTypeSpeechSynthesis, models.JobPayload{"section_id": 1, "language": "sw"})
	require.NoError(t, err)

	processor := &mockProcessor{jobType: models.JobTypeSpeechSynthesis, err: errors.New("synth down")}
	worker := NewWorker("test-worker", jobService, time.Second)
	worker.RegisterProcessor(processor)

	err = worker.processNextJob(ctx)
	require.Error(t, err)

	stored, err := jobService.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stored.Status)
	assert.Equal(t, "synth down", stored.Error)
}

func TestProcessNextJobSkipsUnsupportedTypes(t *testing.T) {
	jobService := setupJobService(t)
	ctx := context.Background()

	enqueued, err := jobService.EnqueueJob(ctx, models.JobTypeTranslationSync, models.JobPayload{"document_id": 1})
	require.NoError(t, err)

	// The only registered processor handles speech jobs, so the
	// translation job must stay untouched
	processor := &mockProcessor{jobType: models.JobTypeSpeechSynthesis}
	worker := NewWorker("test-worker", jobService, time.Second)
	worker.RegisterProcessor(processor)

	require.NoError(t, worker.processNextJob(ctx))
	assert.Empty(t, processor.processed)

	stored, err := jobService.GetJob(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
}

func TestProcessNextJobNoProcessors(t *testing.T) {
	jobService := setupJobService(t)

	worker := NewWorker("test-worker", jobService, time.Second)
	err := worker.processNextJob(context.Background())
	assert.Error(t, err)
}

func TestWorkerPoolStartStop(t *testing.T) {
	jobService := setupJobService(t)

	pool := NewWorkerPool(jobService, 2, 10*time.Millisecond)
	pool.RegisterProcessor(&mockProcessor{jobType: models.JobTypeTranslationSync})

	require.NoError(t, pool.Start(context.Background()))
	assert.Error(t, pool.Start(context.Background()), "second start must be rejected")

	pool.Stop()

	// Stopping twice is a no-op
	pool.Stop()
}

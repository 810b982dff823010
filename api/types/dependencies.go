package types

import (
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/database"
	"github.com/GloryMsasalaga/django-voice/internal/services/cache"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/jobs"
	"github.com/GloryMsasalaga/django-voice/internal/services/scheduler"
	"github.com/GloryMsasalaga/django-voice/internal/services/speech"
	"github.com/GloryMsasalaga/django-voice/internal/services/translations"
	"github.com/GloryMsasalaga/django-voice/internal/services/voice"
	"github.com/GloryMsasalaga/django-voice/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                 *database.DB
	DocumentService    documents.DocumentService
	TranslationService translations.TranslationService
	SpeechService      speech.Service
	VoiceProcessor     *voice.Processor
	Scheduler          *scheduler.Scheduler
	JobService         jobs.Service
	WorkerPool         *workers.WorkerPool
	ResponseCache      cache.Cache
	SearchCacheTTL     time.Duration
	SectionCacheTTL    time.Duration
}

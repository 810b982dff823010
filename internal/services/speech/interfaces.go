package speech

import (
	"context"
	"io"

	"github.com/GloryMsasalaga/django-voice/internal/models"
)

// Synthesizer defines the interface for the external text-to-speech capability
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang models.Language) ([]byte, error)
}

// StorageBackend defines the interface for audio blob storage
type StorageBackend interface {
	Save(ctx context.Context, reader io.Reader, filename string) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
}

// AssetRepository defines the interface for audio asset persistence
type AssetRepository interface {
	GetByTextHash(ctx context.Context, textHash string) (*models.AudioAsset, error)
	Create(ctx context.Context, asset *models.AudioAsset) error
	UpdateLastUsed(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	GetOlderThan(ctx context.Context, days int) ([]models.AudioAsset, error)
}

// Service defines the business logic for speech synthesis and caching
type Service interface {
	// GetOrSynthesize returns the audio asset for a (text, language) pair,
	// synthesizing at most once until the text changes.
	GetOrSynthesize(ctx context.Context, text string, lang models.Language) (*models.AudioAsset, error)

	// GetOrSynthesizeSection is GetOrSynthesize with a section back-reference
	GetOrSynthesizeSection(ctx context.Context, sectionID uint, text string, lang models.Language) (*models.AudioAsset, error)

	// GetAsset looks up an existing asset by text hash without synthesizing
	GetAsset(ctx context.Context, textHash string) (*models.AudioAsset, error)

	// OpenAudio opens the stored audio stream for an asset
	OpenAudio(ctx context.Context, asset *models.AudioAsset) (io.ReadCloser, error)

	// CleanupOld removes assets not used for the given number of days
	CleanupOld(ctx context.Context, olderThanDays int) error
}

package translations

import (
	"context"

	"github.com/GloryMsasalaga/django-voice/internal/models"
)

// Translator defines the interface for the external translation capability
type Translator interface {
	Translate(ctx context.Context, text string, target models.Language) (string, error)
}

// TranslationRepository defines the interface for translation persistence
type TranslationRepository interface {
	GetBySectionAndLanguage(ctx context.Context, sectionID uint, lang models.Language) (*models.Translation, error)
	Upsert(ctx context.Context, translation *models.Translation) error
	DeleteBySectionID(ctx context.Context, sectionID uint) error
	ListMissing(ctx context.Context, lang models.Language) ([]models.Section, error)
}

// TranslationService defines the business logic for section translations
type TranslationService interface {
	// GetOrCreateTranslation returns the stored translation for a section,
	// creating it when missing or stale. English returns the original body.
	GetOrCreateTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, error)

	// GetExistingTranslation returns a stored, still-current translation
	// without ever calling the translator. ok is false when the translation
	// is missing or stale.
	GetExistingTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, bool)

	// TranslateAll translates every section missing a current translation
	// into each of the given languages. A failure for one pair never blocks
	// the others; the returned error is a SyncError summary when partial.
	TranslateAll(ctx context.Context, langs []models.Language) (int, error)
}

package translations

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const DefaultMaxConcurrent = 4

// Service implements the TranslationService interface
type Service struct {
	translator    Translator
	repository    TranslationRepository
	maxConcurrent int
}

var _ TranslationService = (*Service)(nil)

// ServiceOption is a functional option for configuring the service
type ServiceOption func(*Service)

// WithMaxConcurrent sets the maximum concurrent translation calls
func WithMaxConcurrent(max int) ServiceOption {
	return func(s *Service) {
		if max > 0 {
			s.maxConcurrent = max
		}
	}
}

// NewService creates a new translation service
func NewService(translator Translator, repository TranslationRepository, opts ...ServiceOption) *Service {
	s := &Service{
		translator:    translator,
		repository:    repository,
		maxConcurrent: DefaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreateTranslation returns the stored translation when its source hash
// still matches the section; otherwise it translates and upserts. English is
// the canonical source language and returns the original body untouched.
func (s *Service) GetOrCreateTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, error) {
	if !models.IsSupportedLanguage(string(lang)) {
		return "", ErrUnsupportedLanguage
	}
	if lang == models.LanguageEnglish {
		return section.Body, nil
	}

	existing, err := s.repository.GetBySectionAndLanguage(ctx, section.ID, lang)
	if err == nil && existing.SourceHash == section.ContentHash {
		return existing.Body, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	translated, err := s.translator.Translate(ctx, section.Body, lang)
	if err != nil {
		return "", err
	}

	translation := &models.Translation{
		SectionID:  section.ID,
		Language:   lang,
		Body:       translated,
		SourceHash: section.ContentHash,
	}
	if err := s.repository.Upsert(ctx, translation); err != nil {
		return "", err
	}

	return translated, nil
}

// GetExistingTranslation looks up a stored translation and reports whether it
// is present and current. Used on read paths that must stay cheap, like
// search previews.
func (s *Service) GetExistingTranslation(ctx context.Context, section *models.Section, lang models.Language) (string, bool) {
	if lang == models.LanguageEnglish {
		return section.Body, true
	}
	existing, err := s.repository.GetBySectionAndLanguage(ctx, section.ID, lang)
	if err != nil || existing.SourceHash != section.ContentHash {
		return "", false
	}
	return existing.Body, true
}

// TranslateAll translates every section that is missing a current translation
// into each target language. Pairs are fanned out with a bounded errgroup;
// individual failures are collected, never propagated mid-run, so a failing
// language cannot block the others. Returns the number of translations
// written and a SyncError summary when any pair failed.
func (s *Service) TranslateAll(ctx context.Context, langs []models.Language) (int, error) {
	var (
		successCount int
		failureCount int
		errs         []error
		mu           sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, lang := range langs {
		if lang == models.LanguageEnglish {
			continue
		}

		missing, err := s.repository.ListMissing(ctx, lang)
		if err != nil {
			mu.Lock()
			failureCount++
			errs = append(errs, err)
			mu.Unlock()
			continue
		}

		log.Printf("[INFO] Translating %d sections to %s", len(missing), lang)

		for _, section := range missing {
			section := section
			lang := lang
			g.Go(func() error {
				_, err := s.GetOrCreateTranslation(gctx, &section, lang)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failureCount++
					errs = append(errs, err)
					log.Printf("[WARN] Translation of section %d to %s failed: %v", section.ID, lang, err)
					return nil // isolate the failure
				}
				successCount++
				return nil
			})
		}
	}

	_ = g.Wait()

	if failureCount > 0 {
		return successCount, NewSyncError(successCount, failureCount, errs)
	}
	return successCount, nil
}

package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/translations"
)

// TranslationProcessor refreshes translations for all sections of a document
type TranslationProcessor struct {
	documentService    documents.DocumentService
	translationService translations.TranslationService
}

// NewTranslationProcessor creates a processor for translation sync jobs
func NewTranslationProcessor(
	documentService documents.DocumentService,
	translationService translations.TranslationService,
) *TranslationProcessor {
	return &TranslationProcessor{
		documentService:    documentService,
		translationService: translationService,
	}
}

// CanProcess returns true for translation sync jobs
func (p *TranslationProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeTranslationSync
}

// ProcessJob translates every section of the payload's document into each
// supported non-English language. One failing section or language does not
// abort the rest; the job fails only if nothing succeeded.
func (p *TranslationProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	documentID, ok := job.GetPayloadUint("document_id")
	if !ok {
		return fmt.Errorf("job %d: missing document_id in payload", job.ID)
	}

	sections, err := p.documentService.GetSectionsByDocumentID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("job %d: loading sections for document %d: %w", job.ID, documentID, err)
	}

	var succeeded, failed int
	for i := range sections {
		for lang := range models.SupportedLanguages {
			if lang == models.LanguageEnglish {
				continue
			}
			if _, err := p.translationService.GetOrCreateTranslation(ctx, &sections[i], lang); err != nil {
				log.Printf("[WARN] Translation failed for section %d lang %s: %v", sections[i].ID, lang, err)
				failed++
				continue
			}
			succeeded++
		}
	}

	if failed > 0 && succeeded == 0 {
		return fmt.Errorf("job %d: all %d translations failed for document %d", job.ID, failed, documentID)
	}

	log.Printf("[INFO] Translation sync for document %d: %d succeeded, %d failed", documentID, succeeded, failed)
	return nil
}

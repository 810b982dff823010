package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/speech"
	"github.com/GloryMsasalaga/django-voice/internal/services/translations"
)

// SpeechProcessor pre-generates audio assets for sections
type SpeechProcessor struct {
	documentService    documents.DocumentService
	translationService translations.TranslationService
	speechService      speech.Service
}

// NewSpeechProcessor creates a processor for speech synthesis jobs
func NewSpeechProcessor(
	documentService documents.DocumentService,
	translationService translations.TranslationService,
	speechService speech.Service,
) *SpeechProcessor {
	return &SpeechProcessor{
		documentService:    documentService,
		translationService: translationService,
		speechService:      speechService,
	}
}

// CanProcess returns true for speech synthesis jobs
func (p *SpeechProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeSpeechSynthesis
}

// ProcessJob synthesizes audio for the section and language in the payload.
// The asset is cached by text hash, so reprocessing an unchanged section is
// a no-op.
func (p *SpeechProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	sectionID, ok := job.GetPayloadUint("section_id")
	if !ok {
		return fmt.Errorf("job %d: missing section_id in payload", job.ID)
	}

	langStr, ok := job.GetPayloadString("language")
	if !ok {
		return fmt.Errorf("job %d: missing language in payload", job.ID)
	}
	if !models.IsSupportedLanguage(langStr) {
		return fmt.Errorf("job %d: unsupported language %q", job.ID, langStr)
	}
	lang := models.Language(langStr)

	section, err := p.documentService.GetSectionByID(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("job %d: loading section %d: %w", job.ID, sectionID, err)
	}

	text, err := p.translationService.GetOrCreateTranslation(ctx, section, lang)
	if err != nil {
		return fmt.Errorf("job %d: translating section %d to %s: %w", job.ID, sectionID, lang, err)
	}

	asset, err := p.speechService.GetOrSynthesizeSection(ctx, sectionID, text, lang)
	if err != nil {
		return fmt.Errorf("job %d: synthesizing section %d (%s): %w", job.ID, sectionID, lang, err)
	}

	log.Printf("[DEBUG] Speech asset ready for section %d lang %s (asset %d)", sectionID, lang, asset.ID)
	return nil
}

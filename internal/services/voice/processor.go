package voice

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"github.com/GloryMsasalaga/django-voice/internal/services/documents"
	"github.com/GloryMsasalaga/django-voice/internal/services/translations"
)

// Result is the outcome of a processed voice command
type Result struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Response  interface{} `json:"response"`
	SectionID uint        `json:"section_id,omitempty"`
	Language  string      `json:"language,omitempty"`
}

// SearchHit is one entry in a search command response
type SearchHit struct {
	ID      uint   `json:"id"`
	Heading string `json:"heading"`
	URL     string `json:"url"`
}

// The wake word tolerates common mis-hearings from speech recognition
const wakeWord = `(?:kibena|cybena|key\s*bena)`

var commandPatterns = []struct {
	re      *regexp.Regexp
	handler string
}{
	{regexp.MustCompile(`(?i)^` + wakeWord + `\s+read\s+(.+)$`), "read"},
	{regexp.MustCompile(`(?i)^` + wakeWord + `\s+search\s+(.+)$`), "search"},
	{regexp.MustCompile(`(?i)^` + wakeWord + `\s+translate\s+to\s+(\w+)\s+(.+)$`), "translate"},
	{regexp.MustCompile(`(?i)^` + wakeWord + `\s+help$`), "help"},
}

const helpText = `Available commands:
- "Kibena read [topic]" - Read documentation about a topic
- "Kibena search [query]" - Search the documentation for a query
- "Kibena translate to [language] [topic]" - Translate and read documentation in another language
- "Kibena help" - Show this help message`

// Processor dispatches transcribed voice commands against the documentation
// store. Speech capture happens on the client; only text arrives here.
type Processor struct {
	documentService    documents.DocumentService
	translationService translations.TranslationService
}

// NewProcessor creates a voice command processor
func NewProcessor(documentService documents.DocumentService, translationService translations.TranslationService) *Processor {
	return &Processor{
		documentService:    documentService,
		translationService: translationService,
	}
}

// Process matches the command text against the known patterns and runs the
// matching handler. Unrecognized commands return an unsuccessful Result, not
// an error.
func (p *Processor) Process(ctx context.Context, command string) (*Result, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return &Result{
			Success: false,
			Message: "No command recognized",
		}, nil
	}

	for _, cp := range commandPatterns {
		match := cp.re.FindStringSubmatch(command)
		if match == nil {
			continue
		}
		switch cp.handler {
		case "read":
			return p.handleRead(ctx, match[1])
		case "search":
			return p.handleSearch(ctx, match[1])
		case "translate":
			return p.handleTranslate(ctx, match[1], match[2])
		case "help":
			return p.handleHelp(), nil
		}
	}

	return &Result{
		Success:  false,
		Message:  "Unknown command",
		Response: fmt.Sprintf("I'm sorry, I didn't understand the command: %s", command),
	}, nil
}

func (p *Processor) handleRead(ctx context.Context, topic string) (*Result, error) {
	log.Printf("[DEBUG] Voice read command for topic: %s", topic)

	results, err := p.documentService.Search(ctx, topic, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return notFoundResult(topic), nil
	}

	section, err := p.documentService.GetSectionByID(ctx, results[0].SectionID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:   true,
		Message:   fmt.Sprintf("Reading about %s", topic),
		Response:  section.Body,
		SectionID: section.ID,
		Language:  string(models.LanguageEnglish),
	}, nil
}

func (p *Processor) handleSearch(ctx context.Context, query string) (*Result, error) {
	log.Printf("[DEBUG] Voice search command for query: %s", query)

	results, err := p.documentService.Search(ctx, query, 5)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &Result{
			Success:  false,
			Message:  fmt.Sprintf("No results found for %s", query),
			Response: fmt.Sprintf("I'm sorry, I couldn't find any information about %s.", query),
		}, nil
	}

	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, SearchHit{
			ID:      r.SectionID,
			Heading: r.Heading,
			URL:     r.SourceURL,
		})
	}

	return &Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d results for %s", len(hits), query),
		Response: hits,
	}, nil
}

func (p *Processor) handleTranslate(ctx context.Context, language, topic string) (*Result, error) {
	log.Printf("[DEBUG] Voice translate command for language: %s, topic: %s", language, topic)

	langCode, ok := models.LanguageByName(language)
	if !ok {
		return &Result{
			Success:  false,
			Message:  fmt.Sprintf("Unsupported language: %s", language),
			Response: fmt.Sprintf("I'm sorry, %s is not supported for translation.", language),
		}, nil
	}

	results, err := p.documentService.Search(ctx, topic, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return notFoundResult(topic), nil
	}

	section, err := p.documentService.GetSectionByID(ctx, results[0].SectionID)
	if err != nil {
		return nil, err
	}

	translated, err := p.translationService.GetOrCreateTranslation(ctx, section, langCode)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:   true,
		Message:   fmt.Sprintf("Translated content about %s to %s", topic, language),
		Response:  translated,
		SectionID: section.ID,
		Language:  string(langCode),
	}, nil
}

func (p *Processor) handleHelp() *Result {
	return &Result{
		Success:  true,
		Message:  "Help command",
		Response: helpText,
	}
}

func notFoundResult(topic string) *Result {
	return &Result{
		Success:  false,
		Message:  fmt.Sprintf("Could not find documentation about %s", topic),
		Response: fmt.Sprintf("I'm sorry, I couldn't find any information about %s.", topic),
	}
}

package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"golang.org/x/time/rate"
)

// ClientConfig holds configuration for the text-to-speech client
type ClientConfig struct {
	Endpoint          string        // Default: the public translate_tts endpoint
	Timeout           time.Duration // Default: 30s
	RequestsPerMinute int           // Default: 60
}

// Client synthesizes speech through a gTTS-compatible HTTP endpoint: a GET
// with text and language query parameters returning mp3 bytes.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      ClientConfig
}

var _ Synthesizer = (*Client)(nil)

// NewClient creates a new text-to-speech client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://translate.google.com/translate_tts"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 60
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			1,
		),
		config: cfg,
	}
}

// Synthesize converts text to mp3 audio bytes for the given language
func (c *Client) Synthesize(ctx context.Context, text string, lang models.Language) ([]byte, error) {
	if text == "" {
		return nil, NewServiceError(string(lang), 0, fmt.Errorf("empty text"))
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, NewServiceError(string(lang), 0, err)
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", string(lang))
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewServiceError(string(lang), 0, err)
	}
	req.Header.Set("User-Agent", "DjangoVoiceAssistant/1.0 (Educational Project)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewServiceError(string(lang), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewServiceError(string(lang), resp.StatusCode, fmt.Errorf("unexpected status"))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewServiceError(string(lang), 0, err)
	}
	if len(audio) == 0 {
		return nil, NewServiceError(string(lang), 0, fmt.Errorf("empty audio response"))
	}

	return audio, nil
}

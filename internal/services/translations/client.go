package translations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/GloryMsasalaga/django-voice/internal/models"
	"golang.org/x/time/rate"
)

// ClientConfig holds configuration for the translation API client
type ClientConfig struct {
	Endpoint          string
	APIKey            string
	Timeout           time.Duration // Default: 30s
	RequestsPerMinute int           // Default: 60
}

// Client calls an external machine-translation HTTP API. The wire format is a
// small JSON request/response; the concrete service is configured by endpoint.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      ClientConfig
}

var _ Translator = (*Client)(nil)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
	Error          string `json:"error,omitempty"`
}

// NewClient creates a new translation API client
func NewClient(cfg ClientConfig) *Client {
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

// Translate sends text to the translation service. Code blocks are masked
// with placeholder tokens before the call and restored afterward so the
// service never rewrites code.
func (c *Client) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	if text == "" {
		return "", nil
	}
	if target == models.LanguageEnglish {
		return text, nil
	}
	if c.config.Endpoint == "" {
		return "", NewServiceError(string(target), 0, fmt.Errorf("translation endpoint not configured"))
	}

	masked, blocks := protectCodeBlocks(text)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", NewServiceError(string(target), 0, err)
	}

	payload, err := json.Marshal(translateRequest{
		Text:   masked,
		Source: string(models.LanguageEnglish),
		Target: string(target),
	})
	if err != nil {
		return "", NewServiceError(string(target), 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", NewServiceError(string(target), 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", NewServiceError(string(target), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewServiceError(string(target), resp.StatusCode, fmt.Errorf("unexpected status"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewServiceError(string(target), 0, err)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", NewServiceError(string(target), 0, err)
	}
	if result.Error != "" {
		return "", NewServiceError(string(target), 0, fmt.Errorf("%s", result.Error))
	}

	return restoreCodeBlocks(result.TranslatedText, blocks), nil
}

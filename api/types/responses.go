package types

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DocumentSummaryDTO is one entry in the document list
type DocumentSummaryDTO struct {
	ID           uint   `json:"id"`
	SourceURL    string `json:"source_url"`
	Title        string `json:"title"`
	SectionCount int64  `json:"section_count"`
}

// DocumentListResponse for GET /api/v1/documents
type DocumentListResponse struct {
	BaseResponse
	Documents []DocumentSummaryDTO `json:"documents"`
	Count     int                  `json:"count"`
}

// SectionDTO is a section rendered in a requested language
type SectionDTO struct {
	ID       uint   `json:"id"`
	Ordinal  int    `json:"ordinal"`
	Level    int    `json:"level"`
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	Language string `json:"language"`
	AudioURL string `json:"audio_url"`
}

// DocumentResponse for GET /api/v1/documents/:id
type DocumentResponse struct {
	BaseResponse
	ID        uint         `json:"id"`
	SourceURL string       `json:"source_url"`
	Title     string       `json:"title"`
	Sections  []SectionDTO `json:"sections"`
}

// SectionResponse for GET /api/v1/sections/:id
type SectionResponse struct {
	BaseResponse
	Section SectionDTO `json:"section"`
}

// SearchResultDTO is one search hit with a truncated preview
type SearchResultDTO struct {
	SectionID  uint   `json:"section_id"`
	DocumentID uint   `json:"document_id"`
	SourceURL  string `json:"source_url"`
	Heading    string `json:"heading"`
	Preview    string `json:"preview"`
	AudioURL   string `json:"audio_url"`
}

// SearchResponse for GET /api/v1/search
type SearchResponse struct {
	BaseResponse
	Query    string            `json:"query"`
	Language string            `json:"language"`
	Results  []SearchResultDTO `json:"results"`
	Count    int               `json:"count"`
}

// AudioResponse for POST /api/v1/audio
type AudioResponse struct {
	BaseResponse
	AudioURL  string `json:"audio_url"`
	Language  string `json:"language"`
	SizeBytes int64  `json:"size_bytes"`
}

// ScrapeResponse for POST /api/v1/scrape
type ScrapeResponse struct {
	BaseResponse
	Fetched   int    `json:"fetched"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
	Failed    int    `json:"failed"`
	Duration  string `json:"duration"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

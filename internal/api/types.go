package api

import (
	"github.com/quillbox/quill/internal/storage"
)

// StoryPage is the backend's pageable envelope, trimmed to the fields the
// client reads.
type StoryPage struct {
	Content       []*storage.Story `json:"content"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	Number        int              `json:"number"`
	Size          int              `json:"size"`
	Last          bool             `json:"last"`
}

type CreateStoryRequest struct {
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Status        storage.StoryStatus `json:"status"`
	Privacy       storage.Privacy     `json:"privacy"`
	CoverImageURL string              `json:"coverImageUrl,omitempty"`
}

type UpdateStoryRequest struct {
	Title         *string              `json:"title,omitempty"`
	Content       *string              `json:"content,omitempty"`
	Status        *storage.StoryStatus `json:"status,omitempty"`
	Privacy       *storage.Privacy     `json:"privacy,omitempty"`
	CoverImageURL *string              `json:"coverImageUrl,omitempty"`
}

// AuthResponse is the token envelope returned by login and signup.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// ImportStatus is the lifecycle state of a bulk-import job.
type ImportStatus string

const (
	ImportPending   ImportStatus = "PENDING"
	ImportRunning   ImportStatus = "RUNNING"
	ImportCompleted ImportStatus = "COMPLETED"
	ImportFailed    ImportStatus = "FAILED"
	ImportCancelled ImportStatus = "CANCELLED"
)

// Terminal reports whether no further transition can occur.
func (s ImportStatus) Terminal() bool {
	switch s {
	case ImportCompleted, ImportFailed, ImportCancelled:
		return true
	default:
		return false
	}
}

// ImportJob is a snapshot of a bulk-import job.
type ImportJob struct {
	JobID          int64        `json:"jobId"`
	Status         ImportStatus `json:"status"`
	TotalDocuments int          `json:"totalDocuments"`
	ProcessedFiles int          `json:"processedFiles"`
	CreatedStories int          `json:"createdStories"`
	FailedFiles    int          `json:"failedFiles"`
	// Fractional progress, 0-100.
	Progress float64  `json:"progress"`
	Errors   []string `json:"errors,omitempty"`
}

// importEnvelope wraps job payloads with the backend's success flag.
type importEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	ImportJob
}

type ImageUpload struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	Message  string `json:"message"`
}

type ImageConfig struct {
	Enabled bool `json:"enabled"`
}

type Translation struct {
	TranslationID     int64  `json:"translationId,omitempty"`
	StoryID           int64  `json:"storyId,omitempty"`
	SourceLanguage    string `json:"sourceLanguage"`
	TargetLanguage    string `json:"targetLanguage"`
	TranslatedText    string `json:"translatedText,omitempty"`
	TranslatedContent string `json:"translatedContent,omitempty"`
}

type LanguageDetection struct {
	DetectedLanguage string `json:"detectedLanguage"`
	Text             string `json:"text"`
}

type SupportedLanguages struct {
	SupportedLanguages []string          `json:"supportedLanguages"`
	LanguageNames      map[string]string `json:"languageNames"`
}

package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// APIURLValidator checks the configured backend base URL before the
// client is built from it.
type APIURLValidator struct {
	// RequireHTTPS rejects plain-http URLs. Off by default: the backend
	// commonly runs on localhost during development.
	RequireHTTPS bool
	// MaxLength is the maximum allowed URL length.
	MaxLength int
}

// NewAPIURLValidator creates a validator with defaults suitable for a
// local or remote backend.
func NewAPIURLValidator() *APIURLValidator {
	return &APIURLValidator{
		RequireHTTPS: false,
		MaxLength:    2048,
	}
}

// ValidateAndNormalize validates a base URL and returns it without a
// trailing slash.
func (v *APIURLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("API URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("API URL too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'`") {
		return "", fmt.Errorf("API URL contains invalid characters")
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("API URL must use http or https")
	}
	if v.RequireHTTPS && parsed.Scheme != "https" {
		return "", fmt.Errorf("API URL must use https")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("API URL must have a hostname")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

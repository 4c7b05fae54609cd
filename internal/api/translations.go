package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Translation endpoints are pass-throughs; the client owns no logic here
// beyond request shaping.

func (c *Client) TranslateText(ctx context.Context, text, sourceLanguage, targetLanguage string) (*Translation, error) {
	body := map[string]string{
		"text":           text,
		"targetLanguage": targetLanguage,
	}
	if sourceLanguage != "" {
		body["sourceLanguage"] = sourceLanguage
	}
	var out Translation
	if err := c.do(ctx, http.MethodPost, "/translations/text", nil, body, &out); err != nil {
		return nil, fmt.Errorf("translating text: %w", err)
	}
	return &out, nil
}

func (c *Client) DetectLanguage(ctx context.Context, text string) (*LanguageDetection, error) {
	var out LanguageDetection
	if err := c.do(ctx, http.MethodPost, "/translations/detect", nil, map[string]string{"text": text}, &out); err != nil {
		return nil, fmt.Errorf("detecting language: %w", err)
	}
	return &out, nil
}

func (c *Client) TranslateStory(ctx context.Context, storyID int64, targetLanguage string) (*Translation, error) {
	var out Translation
	path := "/translations/story/" + strconv.FormatInt(storyID, 10)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"targetLanguage": targetLanguage}, &out); err != nil {
		return nil, fmt.Errorf("translating story %d: %w", storyID, err)
	}
	return &out, nil
}

func (c *Client) StoryTranslations(ctx context.Context, storyID int64) ([]*Translation, error) {
	var out struct {
		Translations []*Translation `json:"translations"`
		Count        int            `json:"count"`
	}
	path := "/translations/story/" + strconv.FormatInt(storyID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing translations for story %d: %w", storyID, err)
	}
	return out.Translations, nil
}

func (c *Client) GetSupportedLanguages(ctx context.Context) (*SupportedLanguages, error) {
	var out SupportedLanguages
	if err := c.do(ctx, http.MethodGet, "/translations/languages", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing supported languages: %w", err)
	}
	return &out, nil
}

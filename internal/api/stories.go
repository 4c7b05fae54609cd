package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quillbox/quill/internal/storage"
)

// ListStories fetches a page of public stories.
func (c *Client) ListStories(ctx context.Context, page, size int) (*StoryPage, error) {
	query := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var out StoryPage
	if err := c.do(ctx, http.MethodGet, "/stories", query, nil, &out); err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	return &out, nil
}

// MyStories fetches the caller's own stories, drafts included.
func (c *Client) MyStories(ctx context.Context, size int) ([]*storage.Story, error) {
	query := url.Values{"size": {strconv.Itoa(size)}}
	var out StoryPage
	if err := c.do(ctx, http.MethodGet, "/stories/my", query, nil, &out); err != nil {
		return nil, fmt.Errorf("listing own stories: %w", err)
	}
	return out.Content, nil
}

func (c *Client) GetStory(ctx context.Context, id int64) (*storage.Story, error) {
	var out storage.Story
	if err := c.do(ctx, http.MethodGet, storyPath(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching story %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) (*storage.Story, error) {
	var out storage.Story
	if err := c.do(ctx, http.MethodPost, "/stories", nil, req, &out); err != nil {
		return nil, fmt.Errorf("creating story: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateStory(ctx context.Context, id int64, req UpdateStoryRequest) (*storage.Story, error) {
	var out storage.Story
	if err := c.do(ctx, http.MethodPut, storyPath(id), nil, req, &out); err != nil {
		return nil, fmt.Errorf("updating story %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) DeleteStory(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, storyPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting story %d: %w", id, err)
	}
	return nil
}

func (c *Client) PublishStory(ctx context.Context, id int64) (*storage.Story, error) {
	var out storage.Story
	if err := c.do(ctx, http.MethodPost, storyPath(id)+"/publish", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("publishing story %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) UnpublishStory(ctx context.Context, id int64) (*storage.Story, error) {
	var out storage.Story
	if err := c.do(ctx, http.MethodPost, storyPath(id)+"/unpublish", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("unpublishing story %d: %w", id, err)
	}
	return &out, nil
}

// SetStoryCategory reassigns a story's category. A nil categoryID asks the
// backend to auto-assign or uncategorize.
func (c *Client) SetStoryCategory(ctx context.Context, id int64, categoryID *int64) (*storage.Story, error) {
	var query url.Values
	if categoryID != nil {
		query = url.Values{"categoryId": {strconv.FormatInt(*categoryID, 10)}}
	}
	var out storage.Story
	if err := c.do(ctx, http.MethodPut, storyPath(id)+"/category", query, nil, &out); err != nil {
		return nil, fmt.Errorf("setting category on story %d: %w", id, err)
	}
	return &out, nil
}

func storyPath(id int64) string {
	return "/stories/" + strconv.FormatInt(id, 10)
}

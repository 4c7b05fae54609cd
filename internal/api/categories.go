package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quillbox/quill/internal/storage"
)

func (c *Client) ListCategories(ctx context.Context) ([]*storage.Category, error) {
	var out []*storage.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return out, nil
}

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// GetImageConfig reports whether image uploads are enabled server-side.
func (c *Client) GetImageConfig(ctx context.Context) (*ImageConfig, error) {
	var out ImageConfig
	if err := c.do(ctx, http.MethodGet, "/images/config", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching image config: %w", err)
	}
	return &out, nil
}

func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (*ImageUpload, error) {
	var out ImageUpload
	if err := c.doMultipart(ctx, "/images/upload", "image", filename, content, &out); err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}
	if !out.Success {
		return nil, &RemoteError{Message: out.Message}
	}
	return &out, nil
}

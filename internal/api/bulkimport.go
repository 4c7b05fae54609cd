package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// UploadImportArchive submits a ZIP of documents for bulk import and
// returns the initial job snapshot. A 2xx response with success=false is
// a *RemoteError.
func (c *Client) UploadImportArchive(ctx context.Context, filename string, content io.Reader) (*ImportJob, error) {
	var out importEnvelope
	if err := c.doMultipart(ctx, "/bulk-import/upload", "file", filename, content, &out); err != nil {
		return nil, fmt.Errorf("uploading import archive: %w", err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return nil, &RemoteError{Message: msg}
	}
	job := out.ImportJob
	return &job, nil
}

// ImportJobStatus fetches the current snapshot of a bulk-import job.
func (c *Client) ImportJobStatus(ctx context.Context, jobID int64) (*ImportJob, error) {
	var out importEnvelope
	path := "/bulk-import/status/" + strconv.FormatInt(jobID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("fetching import status: %w", err)
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return nil, &RemoteError{Message: msg}
	}
	job := out.ImportJob
	if job.JobID == 0 {
		job.JobID = jobID
	}
	return &job, nil
}

// Package cache keeps converted upload previews until the writer submits the
// article built from them.
package cache

import (
	"context"

	"inkwell-cms/models"
)

// Preview is the HTML produced from one upload.
type Preview struct {
	OwnerID  uint   `json:"owner_id"`
	FileName string `json:"file_name"`
	HTML     string `json:"html"`
}

type PreviewStore interface {
	Put(ctx context.Context, id string, p Preview) error
	// Get returns a not-found error for unknown or expired ids.
	Get(ctx context.Context, id string) (*Preview, error)
	Delete(ctx context.Context, id string) error
}

var errPreviewNotFound = models.NotFoundError("upload not found or expired")

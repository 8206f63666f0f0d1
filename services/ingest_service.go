package services

import (
	"context"
	"io"
	"log/slog"

	"inkwell-cms/cache"
	"inkwell-cms/converter"
	"inkwell-cms/models"
	"inkwell-cms/staging"
)

// DocumentStager is implemented by *staging.Stager.
type DocumentStager interface {
	Stage(ctx context.Context, r io.Reader, filename string) (*staging.File, error)
}

// DocumentConverter is implemented by *converter.Registry.
type DocumentConverter interface {
	Convert(ctx context.Context, path string, format converter.Format) (string, error)
}

type IngestService interface {
	// Upload stages, converts and caches one document. The returned upload id
	// can be passed to CreateArticle instead of content.
	Upload(ctx context.Context, actor models.Actor, r io.Reader, filename string) (*models.UploadResponse, error)
}

type ingestService struct {
	stager    DocumentStager
	converter DocumentConverter
	sanitizer *converter.Sanitizer
	previews  cache.PreviewStore
	logger    *slog.Logger
}

func NewIngestService(
	stager DocumentStager,
	conv DocumentConverter,
	sanitizer *converter.Sanitizer,
	previews cache.PreviewStore,
	logger *slog.Logger,
) IngestService {
	return &ingestService{
		stager:    stager,
		converter: conv,
		sanitizer: sanitizer,
		previews:  previews,
		logger:    logger,
	}
}

func (s *ingestService) Upload(ctx context.Context, actor models.Actor, r io.Reader, filename string) (*models.UploadResponse, error) {
	if err := Authorize(actor, OpUploadDocument); err != nil {
		return nil, err
	}

	staged, err := s.stager.Stage(ctx, r, filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := staged.Release(); err != nil {
			s.logger.Warn("failed to release staged upload", "upload_id", staged.ID, "error", err)
		}
	}()

	html, err := s.converter.Convert(ctx, staged.Path, staged.Format)
	if err != nil {
		s.logger.Warn("document conversion failed",
			"upload_id", staged.ID,
			"file", staged.Name,
			"format", staged.Format,
			"error", err,
		)
		return nil, err
	}
	html = s.sanitizer.Sanitize(html)

	preview := cache.Preview{OwnerID: actor.UserID, FileName: staged.Name, HTML: html}
	if err := s.previews.Put(ctx, staged.ID, preview); err != nil {
		return nil, models.IOError("could not store converted document", err)
	}

	s.logger.Info("document converted",
		"upload_id", staged.ID,
		"format", staged.Format,
		"bytes", staged.Size,
		"writer", actor.Username,
	)
	return &models.UploadResponse{HTML: html, UploadID: staged.ID}, nil
}

package services

import (
	"context"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"inkwell-cms/models"
)

// ExportService renders stored article HTML as markdown.
type ExportService interface {
	Markdown(ctx context.Context, actor models.Actor, id uint) (*models.ArticleExport, error)
}

type exportService struct {
	articles ArticleService
}

func NewExportService(articles ArticleService) ExportService {
	return &exportService{articles: articles}
}

// Markdown exports an article the actor is allowed to read.
func (s *exportService) Markdown(ctx context.Context, actor models.Actor, id uint) (*models.ArticleExport, error) {
	if err := Authorize(actor, OpExportArticle); err != nil {
		return nil, err
	}
	article, err := s.articles.GetArticle(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	markdown, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		return nil, models.ConversionError("could not export article as markdown", err)
	}
	return &models.ArticleExport{
		ID:       article.ID,
		Title:    article.Title,
		Tag:      article.Tag,
		Markdown: strings.TrimSpace(markdown),
	}, nil
}

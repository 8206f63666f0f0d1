package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/cache"
	"inkwell-cms/converter"
	"inkwell-cms/logger"
	"inkwell-cms/models"
	"inkwell-cms/testutils"
)

func TestMarkdownExport(t *testing.T) {
	store := testutils.NewArticleStore()
	articles := NewArticleService(store, cache.NewMemoryPreviewStore(time.Minute), converter.NewSanitizer(), logger.Discard())
	svc := NewExportService(articles)
	ctx := context.Background()

	a, err := articles.CreateArticle(ctx, testutils.Writer(1), models.CreateArticleRequest{
		Title:   "Guide",
		Tag:     "guide",
		Content: "<h1>Hello</h1><p>Some <strong>bold</strong> text</p>",
	})
	require.NoError(t, err)

	_, err = svc.Markdown(ctx, testutils.Reader(9), a.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	out, err := svc.Markdown(ctx, testutils.Writer(1), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "guide", out.Tag)
	assert.Contains(t, out.Markdown, "# Hello")
	assert.Contains(t, out.Markdown, "**bold**")
}

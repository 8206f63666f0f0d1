package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"inkwell-cms/cache"
	"inkwell-cms/converter"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

type ArticleService interface {
	TagAvailable(ctx context.Context, tag string) (bool, error)
	CreateArticle(ctx context.Context, actor models.Actor, req models.CreateArticleRequest) (*models.Article, error)
	GetArticle(ctx context.Context, actor models.Actor, id uint) (*models.Article, error)
	GetPublicArticle(ctx context.Context, id uint) (*models.Article, error)
	ListApproved(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	ListPending(ctx context.Context, actor models.Actor) ([]models.Article, error)
	Approve(ctx context.Context, actor models.Actor, id uint) (*models.Article, error)
	Reject(ctx context.Context, actor models.Actor, id uint) error
	Edit(ctx context.Context, actor models.Actor, id uint, req models.EditArticleRequest) (*models.Article, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	previews    cache.PreviewStore
	sanitizer   *converter.Sanitizer
	logger      *slog.Logger
}

func NewArticleService(
	articleRepo repositories.ArticleRepository,
	previews cache.PreviewStore,
	sanitizer *converter.Sanitizer,
	logger *slog.Logger,
) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		previews:    previews,
		sanitizer:   sanitizer,
		logger:      logger,
	}
}

// TagAvailable reports whether no article uses tag yet. Surrounding
// whitespace is ignored; case is significant.
func (s *articleService) TagAvailable(ctx context.Context, tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, models.ValidationError("tag is required")
	}
	_, err := s.articleRepo.FindByTag(ctx, tag)
	if errors.Is(err, models.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CreateArticle stores a pending article for a writer. Content comes from the
// request body, or from the converted upload named by UploadID when the body
// is empty.
func (s *articleService) CreateArticle(ctx context.Context, actor models.Actor, req models.CreateArticleRequest) (*models.Article, error) {
	if err := Authorize(actor, OpCreateArticle); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	tag := strings.TrimSpace(req.Tag)
	content := req.Content
	uploadID := strings.TrimSpace(req.UploadID)

	if title == "" {
		return nil, models.ValidationError("title is required")
	}
	if tag == "" {
		return nil, models.ValidationError("tag is required")
	}

	if strings.TrimSpace(content) == "" && uploadID != "" {
		preview, err := s.previews.Get(ctx, uploadID)
		if err != nil {
			return nil, err
		}
		if preview.OwnerID != actor.UserID {
			return nil, models.ForbiddenError("upload belongs to another user")
		}
		content = preview.HTML
	}

	content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	if content == "" {
		return nil, models.ValidationError("content is required")
	}

	available, err := s.TagAvailable(ctx, tag)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, models.ConflictError("tag already exists")
	}

	article := &models.Article{
		AuthorID: actor.UserID,
		Title:    title,
		Tag:      tag,
		Content:  content,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	if uploadID != "" {
		if err := s.previews.Delete(ctx, uploadID); err != nil {
			s.logger.Warn("failed to drop upload preview", "upload_id", uploadID, "error", err)
		}
	}

	s.logger.Info("article submitted", "article_id", article.ID, "tag", tag, "author", actor.Username)
	return article, nil
}

// GetArticle returns any article to an admin or its author, and approved
// articles to everyone else.
func (s *articleService) GetArticle(ctx context.Context, actor models.Actor, id uint) (*models.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Approved || article.AuthorID == actor.UserID || Authorize(actor, OpViewAnyArticle) == nil {
		return article, nil
	}
	return nil, models.NotFoundError("article not found")
}

func (s *articleService) GetPublicArticle(ctx context.Context, id uint) (*models.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.Approved {
		return nil, models.NotFoundError("article not found")
	}
	return article, nil
}

func (s *articleService) ListApproved(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	params.Normalize()
	return s.articleRepo.FindApproved(ctx, params)
}

func (s *articleService) ListPending(ctx context.Context, actor models.Actor) ([]models.Article, error) {
	if err := Authorize(actor, OpListPending); err != nil {
		return nil, err
	}
	return s.articleRepo.FindPendingApproval(ctx)
}

// Approve marks the article approved. Approving an approved article succeeds
// without writing.
func (s *articleService) Approve(ctx context.Context, actor models.Actor, id uint) (*models.Article, error) {
	if err := Authorize(actor, OpApproveArticle); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Approved {
		return article, nil
	}

	article, err = s.articleRepo.SetApproved(ctx, id, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("article approved", "article_id", id, "tag", article.Tag, "admin", actor.Username)
	return article, nil
}

// Reject permanently deletes the article.
func (s *articleService) Reject(ctx context.Context, actor models.Actor, id uint) error {
	if err := Authorize(actor, OpRejectArticle); err != nil {
		return err
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("article rejected", "article_id", id, "admin", actor.Username)
	return nil
}

// Edit replaces title and content and leaves the approval flag alone.
func (s *articleService) Edit(ctx context.Context, actor models.Actor, id uint, req models.EditArticleRequest) (*models.Article, error) {
	if err := Authorize(actor, OpEditArticle); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(s.sanitizer.Sanitize(req.Content))
	if title == "" || content == "" {
		return nil, models.ValidationError("title and content are required")
	}

	article, err := s.articleRepo.Update(ctx, id, models.ArticleUpdate{Title: title, Content: content})
	if err != nil {
		return nil, err
	}
	s.logger.Info("article edited", "article_id", id, "admin", actor.Username)
	return article, nil
}

package repositories

import (
	"context"
	"fmt"

	"inkwell-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Article, error)
	FindByTag(ctx context.Context, tag string) (*models.Article, error)
	FindPendingApproval(ctx context.Context) ([]models.Article, error)
	FindApproved(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, id uint, fields models.ArticleUpdate) (*models.Article, error)
	Delete(ctx context.Context, id uint) error
	SetApproved(ctx context.Context, id uint, approved bool) (*models.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Preload("Author").First(&article, id).Error
	if isNotFound(err) {
		return nil, models.NotFoundError("article not found")
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindByTag(ctx context.Context, tag string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Where("tag = ?", tag).First(&article).Error
	if isNotFound(err) {
		return nil, models.NotFoundError("article not found")
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindPendingApproval(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).Preload("Author").
		Where("approved = ?", false).
		Order("created_at asc, id asc").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindApproved(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("approved = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Preload("Author").
		Order("created_at desc, id desc").
		Offset(offset).Limit(params.Limit).
		Find(&articles).Error
	return articles, total, err
}

// Create inserts article. The unique index on tag makes the insert itself the
// authoritative uniqueness check.
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	err := r.db.WithContext(ctx).Create(article).Error
	if isDuplicateKey(err) {
		return models.ConflictError(fmt.Sprintf("tag %q is already taken", article.Tag))
	}
	return err
}

func (r *articleRepository) Update(ctx context.Context, id uint, fields models.ArticleUpdate) (*models.Article, error) {
	return r.updateColumns(ctx, id, map[string]any{
		"title":   fields.Title,
		"content": fields.Content,
	})
}

func (r *articleRepository) SetApproved(ctx context.Context, id uint, approved bool) (*models.Article, error) {
	return r.updateColumns(ctx, id, map[string]any{"approved": approved})
}

func (r *articleRepository) updateColumns(ctx context.Context, id uint, columns map[string]any) (*models.Article, error) {
	res := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.NotFoundError("article not found")
	}
	return r.FindByID(ctx, id)
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NotFoundError("article not found")
	}
	return nil
}

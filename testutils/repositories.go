package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

var (
	_ repositories.ArticleRepository = (*ArticleStore)(nil)
	_ repositories.UserRepository    = (*UserStore)(nil)
)

// ArticleStore is an in-memory ArticleRepository. Tag uniqueness is checked
// under the same lock as the insert, like the unique index in postgres.
type ArticleStore struct {
	mu       sync.Mutex
	nextID   uint
	articles map[uint]models.Article
	authors  *UserStore
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{nextID: 1, articles: make(map[uint]models.Article)}
}

// LinkAuthors makes the finders attach Author from users, the way the gorm
// repository preloads it.
func (s *ArticleStore) LinkAuthors(users *UserStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors = users
}

func (s *ArticleStore) FindByID(_ context.Context, id uint) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, models.NotFoundError("article not found")
	}
	s.preload(&a)
	return &a, nil
}

func (s *ArticleStore) FindByTag(_ context.Context, tag string) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Tag == tag {
			return &a, nil
		}
	}
	return nil, models.NotFoundError("article not found")
}

func (s *ArticleStore) FindPendingApproval(_ context.Context) ([]models.Article, error) {
	return s.filter(false), nil
}

func (s *ArticleStore) FindApproved(_ context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	approved := s.filter(true)
	sort.Slice(approved, func(i, j int) bool { return approved[i].ID > approved[j].ID })

	total := int64(len(approved))
	start := (params.Page - 1) * params.Limit
	if start < 0 || start >= len(approved) {
		return []models.Article{}, total, nil
	}
	end := start + params.Limit
	if end > len(approved) {
		end = len(approved)
	}
	return approved[start:end], total, nil
}

func (s *ArticleStore) Create(_ context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Tag == article.Tag {
			return models.ConflictError(fmt.Sprintf("tag %q is already taken", article.Tag))
		}
	}

	now := time.Now()
	article.ID = s.nextID
	article.CreatedAt = now
	article.UpdatedAt = now
	s.nextID++
	s.articles[article.ID] = *article
	return nil
}

func (s *ArticleStore) Update(_ context.Context, id uint, fields models.ArticleUpdate) (*models.Article, error) {
	return s.mutate(id, func(a *models.Article) {
		a.Title = fields.Title
		a.Content = fields.Content
	})
}

func (s *ArticleStore) SetApproved(_ context.Context, id uint, approved bool) (*models.Article, error) {
	return s.mutate(id, func(a *models.Article) { a.Approved = approved })
}

func (s *ArticleStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return models.NotFoundError("article not found")
	}
	delete(s.articles, id)
	return nil
}

// Count reports how many articles are stored.
func (s *ArticleStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.articles)
}

func (s *ArticleStore) mutate(id uint, fn func(*models.Article)) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, models.NotFoundError("article not found")
	}
	fn(&a)
	a.UpdatedAt = time.Now()
	s.articles[id] = a
	return &a, nil
}

func (s *ArticleStore) filter(approved bool) []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Article{}
	for _, a := range s.articles {
		if a.Approved == approved {
			s.preload(&a)
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// preload expects s.mu to be held.
func (s *ArticleStore) preload(a *models.Article) {
	if s.authors == nil {
		return
	}
	if u, err := s.authors.GetByID(context.Background(), a.AuthorID); err == nil {
		a.Author = u
	}
}

// UserStore is an in-memory UserRepository.
type UserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1, users: make(map[uint]models.User)}
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.ConflictError("user already exists")
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NotFoundError("user not found")
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, models.NotFoundError("user not found")
}

func (s *UserStore) UpdateRoles(_ context.Context, id uint, isWriter, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.NotFoundError("user not found")
	}
	u.IsWriter = isWriter
	u.IsAdmin = isAdmin
	s.users[id] = u
	return nil
}

// SetActive flips a user's active flag.
func (s *UserStore) SetActive(id uint, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Active = active
		s.users[id] = u
	}
}

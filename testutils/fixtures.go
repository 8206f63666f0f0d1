package testutils

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inkwell-cms/models"
)

// UserOption configures a test user.
type UserOption func(*models.User)

func AsWriter() UserOption { return func(u *models.User) { u.IsWriter = true } }

func AsAdmin() UserOption { return func(u *models.User) { u.IsAdmin = true } }

func WithUsername(name string) UserOption {
	return func(u *models.User) { u.Username = name }
}

// CreateTestUser stores a user with a unique username and email.
func CreateTestUser(store *UserStore, opts ...UserOption) *models.User {
	id := uuid.NewString()[:8]
	u := &models.User{
		Username: "test_user_" + id,
		Email:    fmt.Sprintf("test_%s@example.com", id),
		Password: "not-a-hash",
		Active:   true,
	}
	for _, opt := range opts {
		opt(u)
	}
	if err := store.Create(context.Background(), u); err != nil {
		panic(fmt.Sprintf("failed to create test user: %v", err))
	}
	return u
}

// CreateTestArticle stores an article by author with a unique tag.
func CreateTestArticle(store *ArticleStore, authorID uint, approved bool) *models.Article {
	tag := "tag-" + uuid.NewString()[:8]
	a := &models.Article{
		AuthorID: authorID,
		Title:    "Title " + tag,
		Tag:      tag,
		Content:  "<p>body</p>",
	}
	if err := store.Create(context.Background(), a); err != nil {
		panic(fmt.Sprintf("failed to create test article: %v", err))
	}
	if approved {
		if _, err := store.SetApproved(context.Background(), a.ID, true); err != nil {
			panic(err)
		}
		a.Approved = true
	}
	return a
}

// Writer, Admin and Reader build actors without a backing user row.
func Writer(id uint) models.Actor {
	return models.Actor{UserID: id, Username: fmt.Sprintf("writer%d", id), IsWriter: true}
}

func Admin(id uint) models.Actor {
	return models.Actor{UserID: id, Username: fmt.Sprintf("admin%d", id), IsAdmin: true}
}

func Reader(id uint) models.Actor {
	return models.Actor{UserID: id, Username: fmt.Sprintf("reader%d", id)}
}

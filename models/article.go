package models

import (
	"encoding/json"
	"time"
)

type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
)

// Article is a submitted piece of writing. Rejection deletes the row, so only
// the pending and approved states are ever stored.
type Article struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"not null"`
	Tag       string    `json:"tag" gorm:"uniqueIndex;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Approved  bool      `json:"approved" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleAuthor is the public face of an article's author.
type ArticleAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// MarshalJSON writes the author as an ArticleAuthor so account details
// stay off article responses.
func (a Article) MarshalJSON() ([]byte, error) {
	type alias Article
	out := struct {
		alias
		Author *ArticleAuthor `json:"author,omitempty"`
	}{alias: alias(a)}
	if a.Author != nil {
		out.Author = &ArticleAuthor{ID: a.Author.ID, Username: a.Author.Username}
	}
	return json.Marshal(out)
}

func (a *Article) Status() ArticleStatus {
	if a.Approved {
		return StatusApproved
	}
	return StatusPending
}

// ArticleUpdate carries the fields an edit replaces.
type ArticleUpdate struct {
	Title   string
	Content string
}

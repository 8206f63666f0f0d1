package models

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateArticleRequest takes either hand-authored content or the upload_id of
// a previously converted document.
type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Tag      string `json:"tag" binding:"required,min=1,max=100"`
	Content  string `json:"content" binding:"required_without=UploadID"`
	UploadID string `json:"upload_id"`
}

type EditArticleRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content" binding:"required"`
}

type TagAvailabilityQuery struct {
	Tag string `form:"tag" binding:"required"`
}

type TagAvailabilityResponse struct {
	Tag       string `json:"tag"`
	Available bool   `json:"available"`
}

type UploadResponse struct {
	HTML     string `json:"html"`
	UploadID string `json:"upload_id"`
}

type ArticleListParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

type ArticleExport struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Tag      string `json:"tag"`
	Markdown string `json:"markdown"`
}

// Normalize clamps paging to page >= 1 and 1 <= limit <= 100.
func (p *ArticleListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 10
	}
}

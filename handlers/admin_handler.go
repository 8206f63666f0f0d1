package handlers

import (
	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/models"
	"inkwell-cms/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves moderation and role management.
type AdminHandler struct {
	articleService services.ArticleService
	userService    services.UserService
	Helper         *helper.HTTPHelper
}

func NewAdminHandler(articleService services.ArticleService, userService services.UserService, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{articleService: articleService, userService: userService, Helper: h}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	articles, err := h.articleService.ListPending(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", articles)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	article, err := h.articleService.Approve(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article approved", article)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	if err := h.articleService.Reject(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article rejected", h.Helper.EmptyJsonMap())
}

func (h *AdminHandler) Edit(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	var req models.EditArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	article, err := h.articleService.Edit(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

type roleChange func(c *gin.Context, actor models.Actor, username string) (*models.User, error)

func (h *AdminHandler) changeRole(change roleChange, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := change(c, middleware.ActorFrom(c), c.Param("username"))
		if err != nil {
			h.Helper.SendDomainError(c, err)
			return
		}
		h.Helper.SendSuccess(c, message, user)
	}
}

func (h *AdminHandler) GrantAdmin() gin.HandlerFunc {
	return h.changeRole(func(c *gin.Context, a models.Actor, u string) (*models.User, error) {
		return h.userService.GrantAdmin(c.Request.Context(), a, u)
	}, "User is now an admin")
}

func (h *AdminHandler) RevokeAdmin() gin.HandlerFunc {
	return h.changeRole(func(c *gin.Context, a models.Actor, u string) (*models.User, error) {
		return h.userService.RevokeAdmin(c.Request.Context(), a, u)
	}, "Admin privileges removed")
}

func (h *AdminHandler) GrantWriter() gin.HandlerFunc {
	return h.changeRole(func(c *gin.Context, a models.Actor, u string) (*models.User, error) {
		return h.userService.GrantWriter(c.Request.Context(), a, u)
	}, "User is now a writer")
}

func (h *AdminHandler) RevokeWriter() gin.HandlerFunc {
	return h.changeRole(func(c *gin.Context, a models.Actor, u string) (*models.User, error) {
		return h.userService.RevokeWriter(c.Request.Context(), a, u)
	}, "Writer privileges removed")
}

package handlers

import (
	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/models"
	"inkwell-cms/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	exportService  services.ExportService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, exportService services.ExportService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, exportService: exportService, Helper: h}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article submitted for approval", article)
}

func (h *ArticleHandler) TagAvailability(c *gin.Context) {
	var query models.TagAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}

	available, err := h.articleService.TagAvailable(c.Request.Context(), query.Tag)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", models.TagAvailabilityResponse{Tag: query.Tag, Available: available})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) ExportMarkdown(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	export, err := h.exportService.Markdown(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", export)
}

func (h *ArticleHandler) GetPublicArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBindError(c, err)
		return
	}
	params.Normalize()

	articles, total, err := h.articleService.ListApproved(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

func (h *ArticleHandler) GetPublicArticle(c *gin.Context) {
	id, err := articleID(c)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	article, err := h.articleService.GetPublicArticle(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps is everything SetupRouter wires into routes.
type RouterDeps struct {
	AuthService    services.AuthService
	ArticleService services.ArticleService
	IngestService  services.IngestService
	UserService    services.UserService
	ExportService  services.ExportService
	UploadLimiter  *middleware.KeyedRateLimiter
	Logger         *slog.Logger
	AllowOrigins   []string
	MaxUploadBytes int64
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))
	r.Use(cors.New(corsConfig(deps.AllowOrigins)))

	h := helper.NewHTTPHelper()
	authHandler := NewAuthHandler(deps.AuthService, h)
	articleHandler := NewArticleHandler(deps.ArticleService, deps.ExportService, h)
	uploadHandler := NewUploadHandler(deps.IngestService, deps.MaxUploadBytes, h)
	adminHandler := NewAdminHandler(deps.ArticleService, deps.UserService, h)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		public := v1.Group("/public")
		{
			public.GET("/articles", articleHandler.GetPublicArticles)
			public.GET("/articles/:id", articleHandler.GetPublicArticle)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.AuthService, h))
		{
			protected.GET("/profile", authHandler.GetProfile)

			uploadChain := []gin.HandlerFunc{middleware.RequireRole(services.OpUploadDocument, h)}
			if deps.UploadLimiter != nil {
				uploadChain = append(uploadChain, middleware.RateLimit(deps.UploadLimiter, h))
			}
			protected.POST("/uploads", append(uploadChain, uploadHandler.Upload)...)

			articles := protected.Group("/articles")
			{
				articles.GET("/tag-availability", articleHandler.TagAvailability)
				articles.POST("", middleware.RequireRole(services.OpCreateArticle, h), articleHandler.CreateArticle)
				articles.GET("/:id", articleHandler.GetArticle)
				articles.GET("/:id/markdown", articleHandler.ExportMarkdown)
			}

			admin := protected.Group("/admin")
			{
				admin.GET("/articles/pending", middleware.RequireRole(services.OpListPending, h), adminHandler.ListPending)
				admin.POST("/articles/:id/approve", middleware.RequireRole(services.OpApproveArticle, h), adminHandler.Approve)
				admin.DELETE("/articles/:id", middleware.RequireRole(services.OpRejectArticle, h), adminHandler.Reject)
				admin.PUT("/articles/:id", middleware.RequireRole(services.OpEditArticle, h), adminHandler.Edit)

				users := admin.Group("/users/:username", middleware.RequireRole(services.OpManageRoles, h))
				users.POST("/admin", adminHandler.GrantAdmin())
				users.DELETE("/admin", adminHandler.RevokeAdmin())
				users.POST("/writer", adminHandler.GrantWriter())
				users.DELETE("/writer", adminHandler.RevokeWriter())
			}
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

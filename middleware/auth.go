package middleware

import (
	"errors"
	"net/http"
	"strings"

	"inkwell-cms/helper"
	"inkwell-cms/models"
	"inkwell-cms/services"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware verifies the bearer token and reloads the user so role
// changes and deactivation take effect on the next request.
func AuthMiddleware(authService services.AuthService, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "Authorization header required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		claims, err := authService.ParseToken(tokenString)
		if err != nil {
			h.SendDomainError(c, err)
			c.Abort()
			return
		}

		user, err := authService.GetUserByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, models.ErrNotFound) {
			h.SendUnauthorizedError(c, "user no longer exists", h.EmptyJsonMap())
			c.Abort()
			return
		}
		if err != nil {
			h.SendDomainError(c, err)
			c.Abort()
			return
		}
		if !user.Active {
			h.SendUnauthorizedError(c, "user not activated", h.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(actorKey, models.ActorFromUser(user))
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthMiddleware. Unauthenticated
// requests get the zero Actor, which holds no roles.
func ActorFrom(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// RequireRole rejects the request with 403 unless the actor may perform op.
func RequireRole(op services.Operation, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.Authorize(ActorFrom(c), op); err != nil {
			h.SendError(c, err.Error(), h.EmptyJsonMap(), http.StatusForbidden, `forbidden`)
			c.Abort()
			return
		}
		c.Next()
	}
}

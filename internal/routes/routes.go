package routes

import (
	"github.com/gin-gonic/gin"

	"talento_backend/internal/auth"
	"talento_backend/internal/handlers"
	"talento_backend/internal/middleware"
)

// RegisterRoutes вешает все маршруты приложения под /api
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers, tm *auth.TokenManager) {
	authMW := middleware.AuthMiddleware(tm)
	adminMW := middleware.AdminMiddleware()

	api := router.Group("/api")

	h.Health.RegisterRoutes(api)
	h.Auth.RegisterRoutes(api, authMW)
	h.User.RegisterRoutes(api, authMW, adminMW)
	h.Talent.RegisterRoutes(api, authMW, adminMW)
	h.Media.RegisterRoutes(api, authMW, adminMW)
	h.Booking.RegisterRoutes(api, authMW, adminMW)
}

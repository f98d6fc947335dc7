package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/auth"
	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/pkg/apperrors"
	"talento_backend/pkg/contextkeys"
)

// AuthMiddleware - проверка JWT. Claims кладутся в контекст gin
// под ключами из pkg/contextkeys
func AuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tm.ParseToken(tokenStr)
		if err != nil {
			if apperrors.Is(err, auth.ErrTokenExpired) {
				abortWithError(c, apperrors.New(apperrors.CodeTokenExpired, "auth", "Token expired", 401))
				return
			}
			abortWithError(c, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid token", 401))
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextkeys.UserID, claims.UserID)
		c.Set(contextkeys.UserEmail, claims.Email)
		c.Set(contextkeys.UserRole, claims.Role)
		c.Next()
	}
}

// AdminMiddleware пускает дальше только администраторов.
// Ставится после AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != string(models.UserRoleAdmin) {
			abortWithError(c, apperrors.NewForbiddenError("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetUserID возвращает id аутентифицированного пользователя
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserID)
}

// GetUserEmail возвращает email аутентифицированного пользователя
func GetUserEmail(c *gin.Context) string {
	return c.GetString(contextkeys.UserEmail)
}

// GetUserRole возвращает роль аутентифицированного пользователя
func GetUserRole(c *gin.Context) string {
	return c.GetString(contextkeys.UserRole)
}

func abortWithError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}

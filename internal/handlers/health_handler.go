package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/services"
)

type HealthHandler struct {
	userService services.UserService
}

func NewHealthHandler(userService services.UserService) *HealthHandler {
	return &HealthHandler{userService: userService}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health отвечает 200 всегда: недоступность базы отражается
// в поле database, но сам процесс жив
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"success":   true,
		"message":   "Talento Backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	stats, err := h.userService.Stats()
	if err != nil {
		body["database"] = "error: " + err.Error()
	} else {
		body["database"] = "connected"
		body["users"] = stats.TotalUsers
	}

	c.JSON(http.StatusOK, body)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/middleware"
	"talento_backend/internal/models"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterRoutes регистрирует маршруты управления пользователями.
// Все кроме смены мобильного доступны только администратору
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users", authMW)
	{
		users.GET("", adminMW, h.List)
		users.POST("", adminMW, h.Create)
		users.GET("/stats", adminMW, h.Stats)
		users.PATCH("/:userId/role", adminMW, h.UpdateRole)
		users.PATCH("/:userId/mobile", h.UpdateMobile)
		users.DELETE("/:userId", adminMW, h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"count":   len(users),
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.AdminCreate(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    gin.H{"user": user},
	})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(c.Param("userId"), req.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User role updated successfully",
		"data":    gin.H{"user": user},
	})
}

// UpdateMobile - пользователь меняет свой номер, администратор любой
func (h *UserHandler) UpdateMobile(c *gin.Context) {
	targetID := c.Param("userId")
	if middleware.GetUserRole(c) != string(models.UserRoleAdmin) && middleware.GetUserID(c) != targetID {
		h.HandleServiceError(c, apperrors.NewForbiddenError("You can only update your own mobile number"))
		return
	}

	var req dto.UpdateMobileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateMobile(targetID, req.Mobile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mobile number updated successfully",
		"data":    gin.H{"user": user},
	})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

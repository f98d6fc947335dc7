package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/middleware"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/me", authMW, h.Me)
	}
}

// Register - регистрация. Для предзаведенного аккаунта без пароля
// отвечает 200 и устанавливает пароль, иначе 201 и новый аккаунт
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	message := "User registered successfully"
	if !result.Created {
		status = http.StatusOK
		message = "Password set successfully for existing account"
	}

	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    gin.H{"user": result.User},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.ForgotPassword(req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"message": resp.Message,
	}
	// dev-режим: SMTP не настроен, токен уходит прямо в ответ
	if resp.ResetToken != "" {
		body["resetToken"] = resp.ResetToken
		body["resetUrl"] = resp.ResetURL
	}
	c.JSON(http.StatusOK, body)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": user},
	})
}

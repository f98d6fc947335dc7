// Package dto содержит типы запросов и ответов API.
// Ответы мапятся из моделей явно, поле за полем: сериализация
// наружу не должна зависеть от тегов GORM-моделей.
package dto

import (
	"time"

	"talento_backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse - публичное представление пользователя, без хеша пароля
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Mobile        string    `json:"mobile"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AuthResponse - пользователь плюс JWT
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ForgotPasswordResponse - в dev-режиме (SMTP не настроен) токен
// и ссылка возвращаются прямо в ответе
type ForgotPasswordResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken,omitempty"`
	ResetURL   string `json:"resetUrl,omitempty"`
}

// NewUserResponse мапит модель в ответ
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          string(user.Role),
		Mobile:        user.Mobile,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

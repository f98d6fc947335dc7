package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"talento_backend/internal/auth"
	"talento_backend/internal/email"
	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

const resetTokenTTL = time.Hour

// RegisterResult - результат регистрации. Created=false означает,
// что пароль установлен на предзаведенный аккаунт без пароля
type RegisterResult struct {
	User    dto.UserResponse
	Created bool
}

type AuthService interface {
	Register(req *dto.RegisterRequest) (*RegisterResult, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(emailAddr string) (*dto.ForgotPasswordResponse, error)
	ResetPassword(token, newPassword string) error
	Me(userID string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokenManager  *auth.TokenManager
	emailProvider email.Provider
	frontendURL   string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenManager *auth.TokenManager,
	emailProvider email.Provider,
	frontendURL string,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokenManager:  tokenManager,
		emailProvider: emailProvider,
		frontendURL:   frontendURL,
	}
}

// Register - регистрация нового пользователя. Если аккаунт с этим email
// предзаведен администратором без пароля, регистрация устанавливает
// пароль на него вместо создания нового
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*RegisterResult, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if existing != nil {
		if existing.HasPassword() {
			return nil, apperrors.NewConflictError("auth", "User with this email already exists")
		}

		existing.PasswordHash = &hash
		if req.Name != "" {
			existing.Name = req.Name
		}
		if req.Mobile != "" {
			existing.Mobile = req.Mobile
		}
		if err := s.userRepo.Save(existing); err != nil {
			return nil, apperrors.DatabaseError(err)
		}

		logger.Info("password set for pre-provisioned account", "email", existing.Email)
		return &RegisterResult{User: dto.NewUserResponse(existing), Created: false}, nil
	}

	user := newUserFromRegistration(req.Email, req.Name, req.Mobile, hash)
	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("auth", "User with this email already exists")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("user registered", "email", user.Email)
	return &RegisterResult{User: dto.NewUserResponse(user), Created: true}, nil
}

// Login - аутентификация по email и паролю
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
		}
		return nil, apperrors.DatabaseError(err)
	}

	// У предзаведенного аккаунта пароля нет: сначала регистрация
	if !user.HasPassword() || !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "auth", "Invalid email or password", 401)
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user logged in", "email", user.Email, "role", user.Role)
	return &dto.AuthResponse{User: dto.NewUserResponse(user), Token: token}, nil
}

// ForgotPassword - запрос сброса пароля. Существование аккаунта
// не раскрывается; без настроенного SMTP токен возвращается в ответе
func (s *AuthServiceImpl) ForgotPassword(emailAddr string) (*dto.ForgotPasswordResponse, error) {
	neutral := &dto.ForgotPasswordResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	}

	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.Warn("password reset requested for unknown email", "email", emailAddr)
			return neutral, nil
		}
		return nil, apperrors.DatabaseError(err)
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.SaveResetToken(user.Email, token, time.Now().Add(resetTokenTTL)); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	if s.emailProvider == nil {
		logger.Warn("smtp not configured, returning reset token in response", "email", user.Email)
		return &dto.ForgotPasswordResponse{
			Message:    "Password reset token generated (email not configured)",
			ResetToken: token,
			ResetURL:   resetURL,
		}, nil
	}

	if err := s.emailProvider.SendPasswordReset(user.Email, resetURL); err != nil {
		logger.WithError(err).Error("failed to send password reset email", "email", user.Email)
		return nil, apperrors.ExternalServiceError("email", err)
	}

	return neutral, nil
}

// ResetPassword - установка нового пароля по токену сброса
func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError("Password must be at least 6 characters long")
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid or expired reset token", 400)
		}
		return apperrors.DatabaseError(err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return apperrors.DatabaseError(err)
	}
	if err := s.userRepo.ClearResetToken(user.ID); err != nil {
		return apperrors.DatabaseError(err)
	}

	logger.Info("password reset completed", "email", user.Email)
	return nil
}

// Me возвращает профиль аутентифицированного пользователя
func (s *AuthServiceImpl) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func newUserFromRegistration(emailAddr, name, mobile, hash string) *models.User {
	return &models.User{
		Email:         emailAddr,
		Name:          name,
		PasswordHash:  &hash,
		Role:          models.UserRoleUser,
		Mobile:        mobile,
		EmailVerified: true,
	}
}

// 32 случайных байта в hex, как и токен в письме
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

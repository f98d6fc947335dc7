package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talento_backend/internal/auth"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories/memory"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

func newAuthFixture() (services.AuthService, *memory.Store) {
	store := memory.NewStore()
	tm := auth.NewTokenManager("test-secret", 24*time.Hour)
	svc := services.NewAuthService(store.Users(), tm, nil, "http://localhost:5173")
	return svc, store
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthFixture()

	result, err := svc.Register(&dto.RegisterRequest{
		Email:    "mario@test.com",
		Password: "password123",
		Name:     "Mario Rossi",
		Mobile:   "+39 333 1234567",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "mario@test.com", result.User.Email)
	assert.Equal(t, "user", result.User.Role)

	resp, err := svc.Login(&dto.LoginRequest{Email: "mario@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, result.User.ID, resp.User.ID)

	// неверный пароль и несуществующий email дают одинаковую 401
	_, err = svc.Login(&dto.LoginRequest{Email: "mario@test.com", Password: "wrong"})
	assertHTTPCode(t, err, 401)
	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	assertHTTPCode(t, err, 401)
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthFixture()

	_, err := svc.Register(&dto.RegisterRequest{Email: "dup@test.com", Password: "password123", Name: "A"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "dup@test.com", Password: "password456", Name: "B"})
	assertHTTPCode(t, err, 409)
}

// Предзаведенный админом аккаунт без пароля: регистрация
// устанавливает пароль вместо создания нового аккаунта
func TestRegisterPreProvisionedAccount(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture()

	provisioned := &models.User{
		Email:         "invited@test.com",
		Name:          "Invited Talent",
		Role:          models.UserRoleUser,
		EmailVerified: true,
	}
	require.NoError(t, store.Users().Create(provisioned))

	// пока пароль не установлен, логин дает обычную 401,
	// а не внутреннюю ошибку
	_, err := svc.Login(&dto.LoginRequest{Email: "invited@test.com", Password: "anything"})
	assertHTTPCode(t, err, 401)

	result, err := svc.Register(&dto.RegisterRequest{
		Email:    "invited@test.com",
		Password: "newpassword",
		Name:     "Invited Talent",
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, provisioned.ID, result.User.ID)

	// после установки пароля логин работает
	resp, err := svc.Login(&dto.LoginRequest{Email: "invited@test.com", Password: "newpassword"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

// Без SMTP токен сброса возвращается прямо в ответе (dev-режим)
func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthFixture()

	_, err := svc.Register(&dto.RegisterRequest{Email: "reset@test.com", Password: "oldpassword", Name: "R"})
	require.NoError(t, err)

	resp, err := svc.ForgotPassword("reset@test.com")
	require.NoError(t, err)
	require.NotEmpty(t, resp.ResetToken)
	assert.Contains(t, resp.ResetURL, resp.ResetToken)

	require.NoError(t, svc.ResetPassword(resp.ResetToken, "newpassword"))

	// старый пароль больше не работает, новый работает
	_, err = svc.Login(&dto.LoginRequest{Email: "reset@test.com", Password: "oldpassword"})
	assertHTTPCode(t, err, 401)
	_, err = svc.Login(&dto.LoginRequest{Email: "reset@test.com", Password: "newpassword"})
	require.NoError(t, err)

	// токен одноразовый
	err = svc.ResetPassword(resp.ResetToken, "anotherpassword")
	assertHTTPCode(t, err, 400)
}

// Существование аккаунта не раскрывается
func TestForgotPasswordUnknownEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthFixture()

	resp, err := svc.ForgotPassword("ghost@test.com")
	require.NoError(t, err)
	assert.Empty(t, resp.ResetToken)
	assert.Contains(t, resp.Message, "If an account")
}

func TestExpiredResetToken(t *testing.T) {
	t.Parallel()
	svc, store := newAuthFixture()

	_, err := svc.Register(&dto.RegisterRequest{Email: "late@test.com", Password: "password123", Name: "L"})
	require.NoError(t, err)

	require.NoError(t, store.Users().SaveResetToken("late@test.com", "stale-token", time.Now().Add(-time.Minute)))

	err = svc.ResetPassword("stale-token", "newpassword")
	assertHTTPCode(t, err, 400)
}

func assertHTTPCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.HTTPCode)
}

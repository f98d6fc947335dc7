package handlers

import (
	"talento_backend/internal/services"
	"talento_backend/internal/validator"
)

// AppHandlers - реестр всех обработчиков приложения
type AppHandlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Talent  *TalentHandler
	Media   *MediaHandler
	Booking *BookingHandler
	Health  *HealthHandler
}

// NewAppHandlers собирает слой обработчиков
func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:    NewAuthHandler(base, sc.Auth),
		User:    NewUserHandler(base, sc.User),
		Talent:  NewTalentHandler(base, sc.Talent),
		Media:   NewMediaHandler(base, sc.Media),
		Booking: NewBookingHandler(base, sc.Booking),
		Health:  NewHealthHandler(sc.User),
	}
}

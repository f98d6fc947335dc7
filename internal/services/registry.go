package services

import (
	"talento_backend/internal/auth"
	"talento_backend/internal/email"
	"talento_backend/internal/repositories"
	"talento_backend/internal/storage"
)

// Repositories - набор хранилищ, от которых зависят сервисы.
// В проде это GORM поверх PostgreSQL, в тестах in-memory стор
type Repositories struct {
	Users    repositories.UserRepository
	Talents  repositories.TalentRepository
	Media    repositories.MediaRepository
	Bookings repositories.BookingRepository
}

// Options - внешние зависимости сервисного слоя
type Options struct {
	TokenManager   *auth.TokenManager
	EmailProvider  email.Provider
	Storage        storage.Storage
	FrontendURL    string
	UploadFolder   string
	MaxUploadSize  int64
	MaxUploadFiles int
}

// ServiceContainer - реестр всех сервисов приложения
type ServiceContainer struct {
	Auth    AuthService
	User    UserService
	Talent  TalentService
	Media   MediaService
	Booking BookingService
}

// NewServiceContainer собирает сервисный слой
func NewServiceContainer(repos Repositories, opts Options) *ServiceContainer {
	return &ServiceContainer{
		Auth:    NewAuthService(repos.Users, opts.TokenManager, opts.EmailProvider, opts.FrontendURL),
		User:    NewUserService(repos.Users),
		Talent:  NewTalentService(repos.Talents, repos.Media, opts.Storage),
		Media:   NewMediaService(repos.Media, opts.Storage, opts.UploadFolder, opts.MaxUploadSize, opts.MaxUploadFiles),
		Booking: NewBookingService(repos.Bookings, repos.Users),
	}
}

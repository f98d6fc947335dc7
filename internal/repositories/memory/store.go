// Package memory содержит in-memory реализацию репозиториев.
// Используется как тестовый дублер вместо PostgreSQL: то же поведение,
// включая каскады и ограничение "одна активная заявка на владельца".
// Все таблицы защищены одним RWMutex.
package memory

import (
	"sync"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	talents  map[string]models.TalentApplication
	media    map[string]models.MediaUpload
	bookings map[string]models.Booking
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		talents:  make(map[string]models.TalentApplication),
		media:    make(map[string]models.MediaUpload),
		bookings: make(map[string]models.Booking),
	}
}

func (s *Store) Users() repositories.UserRepository {
	return &userRepo{s: s}
}

func (s *Store) Talents() repositories.TalentRepository {
	return &talentRepo{s: s}
}

func (s *Store) Media() repositories.MediaRepository {
	return &mediaRepo{s: s}
}

func (s *Store) Bookings() repositories.BookingRepository {
	return &bookingRepo{s: s}
}

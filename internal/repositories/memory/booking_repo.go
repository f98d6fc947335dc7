package memory

import (
	"time"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) Create(booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// ID бронирования формирует сервис ("BOOK-" + unix ms)
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.BookingStatusPendingConfirmation
	}
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingRepo) FindByID(id string) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	return &booking, nil
}

func (r *bookingRepo) FindAll(status models.BookingStatus) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := make([]models.Booking, 0, len(r.s.bookings))
	for _, booking := range r.s.bookings {
		if status != "" && booking.Status != status {
			continue
		}
		bookings = append(bookings, booking)
	}
	sortByCreatedDesc(bookings, func(b models.Booking) (time.Time, string) { return b.CreatedAt, b.ID })
	return bookings, nil
}

func (r *bookingRepo) FindByUserID(userID string) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var bookings []models.Booking
	for _, booking := range r.s.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	sortByCreatedDesc(bookings, func(b models.Booking) (time.Time, string) { return b.CreatedAt, b.ID })
	return bookings, nil
}

func (r *bookingRepo) UpdateStatus(id string, status models.BookingStatus) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	r.s.bookings[id] = booking
	return &booking, nil
}

func (r *bookingRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[id]; !ok {
		return repositories.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *bookingRepo) GetStats() (*repositories.BookingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats repositories.BookingStats
	for _, booking := range r.s.bookings {
		stats.Total++
		switch booking.Status {
		case models.BookingStatusPendingConfirmation:
			stats.PendingConfirmation++
		case models.BookingStatusConfirmed:
			stats.Confirmed++
		case models.BookingStatusCompleted:
			stats.Completed++
		case models.BookingStatusCancelled:
			stats.Cancelled++
		}
	}
	return &stats, nil
}

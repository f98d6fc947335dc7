package repositories

import (
	"errors"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingStats - количество бронирований по статусам
type BookingStats struct {
	Total               int64 `json:"total"`
	PendingConfirmation int64 `json:"pendingConfirmation"`
	Confirmed           int64 `json:"confirmed"`
	Completed           int64 `json:"completed"`
	Cancelled           int64 `json:"cancelled"`
}

type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id string) (*models.Booking, error)
	FindAll(status models.BookingStatus) ([]models.Booking, error)
	FindByUserID(userID string) ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) (*models.Booking, error)
	Delete(id string) error
	GetStats() (*BookingStats, error)
}

type BookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

func (r *BookingRepositoryImpl) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepositoryImpl) FindByID(id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindAll(status models.BookingStatus) ([]models.Booking, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	err := query.Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepositoryImpl) FindByUserID(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// UpdateStatus - один UPDATE, упорядочивания переходов между статусами нет
func (r *BookingRepositoryImpl) UpdateStatus(id string, status models.BookingStatus) (*models.Booking, error) {
	result := r.db.Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookingNotFound
	}
	return r.FindByID(id)
}

func (r *BookingRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) GetStats() (*BookingStats, error) {
	var stats BookingStats

	if err := r.db.Model(&models.Booking{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := map[models.BookingStatus]*int64{
		models.BookingStatusPendingConfirmation: &stats.PendingConfirmation,
		models.BookingStatusConfirmed:           &stats.Confirmed,
		models.BookingStatusCompleted:           &stats.Completed,
		models.BookingStatusCancelled:           &stats.Cancelled,
	}
	for status, dst := range counts {
		if err := r.db.Model(&models.Booking{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}

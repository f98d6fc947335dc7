package dto

import (
	"time"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

// TimeSlot - выбранный слот: дата и время как показаны пользователю
// плюс машиночитаемый datetime
type TimeSlot struct {
	Date     string    `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required"`
	Datetime time.Time `json:"datetime" validate:"required"`
}

type CreateBookingRequest struct {
	// UserName и телефон приходят из формы; владелец и email
	// берутся из токена, а не из тела запроса
	UserName    string   `json:"userName"`
	PhoneNumber string   `json:"phoneNumber"`
	TimeSlot    TimeSlot `json:"timeSlot" validate:"required"`
	Talents     []string `json:"talents" validate:"required,min=1"`
	PriceRange  string   `json:"priceRange" validate:"required"`
	UserIdea    string   `json:"userIdea"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,bookingstatus"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	PhoneNumber string    `json:"phoneNumber"`
	TimeSlot    TimeSlot  `json:"timeSlot"`
	Talents     []string  `json:"talents"`
	PriceRange  string    `json:"priceRange"`
	UserIdea    string    `json:"userIdea"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingStatsResponse - счетчики по статусам, ключи повторяют
// итальянские названия статусов
type BookingStatsResponse struct {
	Total               int64 `json:"total"`
	InAttesaDiConferma  int64 `json:"inAttesaDiConferma"`
	Confermata          int64 `json:"confermata"`
	Fatta               int64 `json:"fatta"`
	Cancellata          int64 `json:"cancellata"`
}

// NewBookingResponse мапит модель в ответ
func NewBookingResponse(booking *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID,
		UserID:      booking.UserID,
		UserEmail:   booking.UserEmail,
		UserName:    booking.UserName,
		PhoneNumber: booking.PhoneNumber,
		TimeSlot: TimeSlot{
			Date:     booking.TimeSlotDate,
			Time:     booking.TimeSlotTime,
			Datetime: booking.TimeSlotDatetime,
		},
		Talents:    emptyIfNil(booking.Talents),
		PriceRange: booking.PriceRange,
		UserIdea:   booking.UserIdea,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
		UpdatedAt:  booking.UpdatedAt,
	}
}

// NewBookingResponseList мапит срез моделей, пустой срез вместо null
func NewBookingResponseList(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}

// NewBookingStatsResponse мапит агрегаты репозитория в ответ
func NewBookingStatsResponse(stats *repositories.BookingStats) BookingStatsResponse {
	return BookingStatsResponse{
		Total:              stats.Total,
		InAttesaDiConferma: stats.PendingConfirmation,
		Confermata:         stats.Confirmed,
		Fatta:              stats.Completed,
		Cancellata:         stats.Cancelled,
	}
}

package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

// BookingListResult - бронирования вместе со счетчиками по статусам
type BookingListResult struct {
	Bookings []dto.BookingResponse
	Stats    dto.BookingStatsResponse
}

type BookingService interface {
	Create(caller Caller, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	List(status string) (*BookingListResult, error)
	ListByUser(caller Caller, userID string) ([]dto.BookingResponse, error)
	GetByID(caller Caller, id string) (*dto.BookingResponse, error)
	UpdateStatus(id string, status string) (*dto.BookingResponse, error)
	Delete(id string) error
}

type BookingServiceImpl struct {
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository, userRepo repositories.UserRepository) BookingService {
	return &BookingServiceImpl{bookingRepo: bookingRepo, userRepo: userRepo}
}

// Create - новое бронирование. Владелец и email берутся из токена;
// человекочитаемый ID формируется из текущего времени
func (s *BookingServiceImpl) Create(caller Caller, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if len(req.Talents) == 0 {
		return nil, apperrors.NewBadRequestError("talents must be a non-empty array")
	}
	if req.TimeSlot.Date == "" || req.TimeSlot.Time == "" || req.TimeSlot.Datetime.IsZero() {
		return nil, apperrors.NewBadRequestError("timeSlot must include date, time, and datetime fields")
	}

	userName := req.UserName
	if userName == "" {
		user, err := s.userRepo.FindByID(caller.ID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		userName = user.Name
	}

	booking := &models.Booking{
		UserID:      caller.ID,
		UserEmail:   caller.Email,
		UserName:    userName,
		PhoneNumber: req.PhoneNumber,

		TimeSlotDate:     req.TimeSlot.Date,
		TimeSlotTime:     req.TimeSlot.Time,
		TimeSlotDatetime: req.TimeSlot.Datetime,

		Talents:    orEmptyList(req.Talents),
		PriceRange: req.PriceRange,
		UserIdea:   req.UserIdea,
		Status:     models.BookingStatusPendingConfirmation,
	}
	booking.ID = nextBookingID()

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("booking created", "bookingId", booking.ID, "userId", booking.UserID, "talents", len(booking.Talents))
	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

var lastBookingStamp atomic.Int64

// nextBookingID - "BOOK-" плюс unix ms. Метка строго монотонна:
// два бронирования в одну миллисекунду не получат одинаковый ID
func nextBookingID() string {
	stamp := time.Now().UnixMilli()
	for {
		last := lastBookingStamp.Load()
		if stamp <= last {
			stamp = last + 1
		}
		if lastBookingStamp.CompareAndSwap(last, stamp) {
			return fmt.Sprintf("BOOK-%d", stamp)
		}
	}
}

func (s *BookingServiceImpl) List(status string) (*BookingListResult, error) {
	if status != "" && !models.ValidBookingStatuses[models.BookingStatus(status)] {
		return nil, apperrors.NewBadRequestError("Invalid status filter")
	}

	bookings, err := s.bookingRepo.FindAll(models.BookingStatus(status))
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.bookingRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &BookingListResult{
		Bookings: dto.NewBookingResponseList(bookings),
		Stats:    dto.NewBookingStatsResponse(stats),
	}, nil
}

// ListByUser - бронирования пользователя. Обычный пользователь видит
// только свои, администратор любые
func (s *BookingServiceImpl) ListByUser(caller Caller, userID string) ([]dto.BookingResponse, error) {
	if !caller.IsAdmin() && caller.ID != userID {
		return nil, apperrors.NewForbiddenError("You can only view your own bookings")
	}

	bookings, err := s.bookingRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewBookingResponseList(bookings), nil
}

func (s *BookingServiceImpl) GetByID(caller Caller, id string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.NewNotFoundError("booking", "Booking not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !caller.IsAdmin() && booking.UserID != caller.ID {
		return nil, apperrors.NewForbiddenError("You can only view your own bookings")
	}

	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

// UpdateStatus переводит бронирование в любой из известных статусов,
// порядок переходов не ограничен
func (s *BookingServiceImpl) UpdateStatus(id string, status string) (*dto.BookingResponse, error) {
	if !models.ValidBookingStatuses[models.BookingStatus(status)] {
		return nil, apperrors.New(apperrors.CodeInvalidStatus, "booking", "Invalid booking status", 400)
	}

	booking, err := s.bookingRepo.UpdateStatus(id, models.BookingStatus(status))
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.NewNotFoundError("booking", "Booking not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("booking status updated", "bookingId", id, "status", status)
	resp := dto.NewBookingResponse(booking)
	return &resp, nil
}

func (s *BookingServiceImpl) Delete(id string) error {
	if err := s.bookingRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return apperrors.NewNotFoundError("booking", "Booking not found")
		}
		return apperrors.DatabaseError(err)
	}

	logger.Info("booking deleted", "bookingId", id)
	return nil
}

package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories/memory"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
)

func newBookingFixture() (services.BookingService, *memory.Store) {
	store := memory.NewStore()
	svc := services.NewBookingService(store.Bookings(), store.Users())
	return svc, store
}

func validBooking() *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		UserName:    "Mario Rossi",
		PhoneNumber: "+39 333 1234567",
		TimeSlot: dto.TimeSlot{
			Date:     "2026-09-15",
			Time:     "15:00",
			Datetime: time.Date(2026, 9, 15, 15, 0, 0, 0, time.UTC),
		},
		Talents:    []string{"talent-1", "talent-2"},
		PriceRange: "€€",
		UserIdea:   "Video per il lancio del prodotto",
	}
}

func TestBookingCreate(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	booking, err := svc.Create(userCaller("user-1"), validBooking())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.ID, "BOOK-"), booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "user-1@test.com", booking.UserEmail)
	assert.Equal(t, "in attesa di conferma", booking.Status)
	assert.Equal(t, []string{"talent-1", "talent-2"}, booking.Talents)
}

func TestBookingCreateValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	noTalents := validBooking()
	noTalents.Talents = nil
	_, err := svc.Create(userCaller("user-1"), noTalents)
	assertHTTPCode(t, err, 400)

	noSlot := validBooking()
	noSlot.TimeSlot.Datetime = time.Time{}
	_, err = svc.Create(userCaller("user-1"), noSlot)
	assertHTTPCode(t, err, 400)
}

// Имя из аккаунта подставляется, если форма его не прислала
func TestBookingCreateFallsBackToAccountName(t *testing.T) {
	t.Parallel()
	svc, store := newBookingFixture()

	user := &models.User{Name: "Account Name", Email: "acct@test.com"}
	require.NoError(t, store.Users().Create(user))

	req := validBooking()
	req.UserName = ""
	booking, err := svc.Create(services.Caller{ID: user.ID, Email: user.Email, Role: "user"}, req)
	require.NoError(t, err)
	assert.Equal(t, "Account Name", booking.UserName)
}

// Обычный пользователь видит только свои бронирования
func TestBookingOwnership(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	mine, err := svc.Create(userCaller("user-1"), validBooking())
	require.NoError(t, err)
	_, err = svc.Create(userCaller("user-2"), validBooking())
	require.NoError(t, err)

	list, err := svc.ListByUser(userCaller("user-1"), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	_, err = svc.ListByUser(userCaller("user-1"), "user-2")
	assertHTTPCode(t, err, 403)

	// администратор видит любые
	list, err = svc.ListByUser(adminCaller(), "user-2")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GetByID(userCaller("user-2"), mine.ID)
	assertHTTPCode(t, err, 403)
	_, err = svc.GetByID(adminCaller(), mine.ID)
	require.NoError(t, err)
}

// Переходы между статусами не упорядочены: любой известный статус
// можно установить из любого
func TestBookingStatusUpdates(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	booking, err := svc.Create(userCaller("user-1"), validBooking())
	require.NoError(t, err)

	for _, status := range []string{"confermata", "fatta", "cancellata", "in attesa di conferma"} {
		updated, uerr := svc.UpdateStatus(booking.ID, status)
		require.NoError(t, uerr)
		assert.Equal(t, status, updated.Status)
	}

	_, err = svc.UpdateStatus(booking.ID, "confirmed")
	assertHTTPCode(t, err, 400)
	_, err = svc.UpdateStatus("BOOK-0", "confermata")
	assertHTTPCode(t, err, 404)
}

func TestBookingListWithStats(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	first, err := svc.Create(userCaller("user-1"), validBooking())
	require.NoError(t, err)
	_, err = svc.Create(userCaller("user-2"), validBooking())
	require.NoError(t, err)
	_, err = svc.UpdateStatus(first.ID, "confermata")
	require.NoError(t, err)

	result, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, result.Bookings, 2)
	assert.Equal(t, int64(2), result.Stats.Total)
	assert.Equal(t, int64(1), result.Stats.InAttesaDiConferma)
	assert.Equal(t, int64(1), result.Stats.Confermata)

	confirmed, err := svc.List("confermata")
	require.NoError(t, err)
	require.Len(t, confirmed.Bookings, 1)
	assert.Equal(t, first.ID, confirmed.Bookings[0].ID)

	_, err = svc.List("bogus")
	assertHTTPCode(t, err, 400)
}

func TestBookingDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newBookingFixture()

	booking, err := svc.Create(userCaller("user-1"), validBooking())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(booking.ID))
	err = svc.Delete(booking.ID)
	assertHTTPCode(t, err, 404)
}

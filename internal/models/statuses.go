package models

type UserRole string
type ApplicationStatus string
type BookingStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusVerified ApplicationStatus = "verified"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	// Статусы бронирований исторически на итальянском (так хранит фронт)
	BookingStatusPendingConfirmation BookingStatus = "in attesa di conferma"
	BookingStatusConfirmed           BookingStatus = "confermata"
	BookingStatusCompleted           BookingStatus = "fatta"
	BookingStatusCancelled           BookingStatus = "cancellata"
)

// ReviewableStatuses - единственные допустимые целевые статусы для ревью заявки
var ReviewableStatuses = map[ApplicationStatus]bool{
	ApplicationStatusVerified: true,
	ApplicationStatusRejected: true,
}

// ValidBookingStatuses - полный набор статусов бронирования
var ValidBookingStatuses = map[BookingStatus]bool{
	BookingStatusPendingConfirmation: true,
	BookingStatusConfirmed:           true,
	BookingStatusCompleted:           true,
	BookingStatusCancelled:           true,
}

// IsActive сообщает, считается ли заявка активной
// (активная = pending или verified; rejected можно подать заново)
func (s ApplicationStatus) IsActive() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusVerified
}

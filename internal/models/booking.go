package models

import "time"

// Booking - запись о бронировании. ID человекочитаемый: "BOOK-" + unix ms.
type Booking struct {
	BaseModel
	UserID      string `gorm:"type:varchar(255);not null;index"`
	UserEmail   string `gorm:"not null"`
	UserName    string `gorm:"not null"`
	PhoneNumber string `gorm:"type:varchar(255)"`

	// Слот времени: все три поля обязательны и должны согласоваться
	TimeSlotDate     string    `gorm:"not null"`
	TimeSlotTime     string    `gorm:"not null"`
	TimeSlotDatetime time.Time `gorm:"not null"`

	Talents    StringList    `gorm:"type:jsonb;not null"`
	PriceRange string        `gorm:"type:varchar(50);not null"`
	UserIdea   string        `gorm:"type:text"`
	Status     BookingStatus `gorm:"type:varchar(50);default:'in attesa di conferma';index"`
}

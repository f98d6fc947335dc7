package models

import "time"

// TalentApplication - заявка таланта. Одна строка на заявителя,
// статус контролируется администратором (pending -> verified | rejected).
type TalentApplication struct {
	BaseModel
	UserID *string           `gorm:"type:varchar(255);index"`
	Email  string            `gorm:"not null"`
	Status ApplicationStatus `gorm:"type:varchar(50);default:'pending';index"`

	// Personal information
	FullName  string `gorm:"not null"`
	BirthYear int    `gorm:"not null"`
	City      string `gorm:"not null"`
	Nickname  string
	Phone     string `gorm:"type:varchar(50);not null"`
	Bio       string `gorm:"type:text"`

	// Profile information
	SocialChannels    StringList `gorm:"type:jsonb;default:'[]'"`
	SocialLinks       string     `gorm:"type:text"`
	MediaKitURLs      StringList `gorm:"column:media_kit_urls;type:jsonb;default:'[]'"`
	ContentCategories StringList `gorm:"type:jsonb;default:'[]'"`

	// Availability
	AvailableForProducts string `gorm:"type:varchar(50);default:'No'"`
	ShippingAddress      string `gorm:"type:text"`
	AvailableForReels    string `gorm:"type:varchar(50);default:'No'"`
	AvailableNext3Months string `gorm:"column:available_next_3_months;type:varchar(50);default:'No'"`
	AvailabilityPeriod   string `gorm:"type:text"`

	// Experience
	CollaboratedAgencies string `gorm:"type:varchar(50);default:'No'"`
	AgenciesList         string `gorm:"type:text"`
	CollaboratedBrands   string `gorm:"type:varchar(50);default:'No'"`
	BrandsList           string `gorm:"type:text"`

	// Fiscal information
	HasVAT         string     `gorm:"column:has_vat;type:varchar(50);default:'No'"`
	PaymentMethods StringList `gorm:"type:jsonb;default:'[]'"`

	// Terms
	TermsAccepted bool `gorm:"default:false"`

	// Admin-only: только символы €, например "€€€"
	Price string `gorm:"type:varchar(10);default:''"`

	// Celebrity & analytics
	IsCelebrity bool `gorm:"default:false"`
	ClickCount  int  `gorm:"default:0"`

	// Review trail: заполняется только при смене статуса
	ReviewedAt  *time.Time
	ReviewedBy  string `gorm:"type:varchar(255)"`
	ReviewNotes string `gorm:"type:text"`
}

package dto

import (
	"time"

	"talento_backend/internal/models"
)

type CreateTalentRequest struct {
	// Personal information
	FullName  string `json:"fullName" validate:"required"`
	BirthYear int    `json:"birthYear" validate:"required,gte=1900,lte=2100"`
	City      string `json:"city" validate:"required"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone" validate:"required"`
	Bio       string `json:"bio"`

	// Profile information
	SocialChannels    []string `json:"socialChannels"`
	SocialLinks       string   `json:"socialLinks"`
	MediaKitURLs      []string `json:"mediaKitUrls"`
	ContentCategories []string `json:"contentCategories"`

	// Availability
	AvailableForProducts string `json:"availableForProducts"`
	ShippingAddress      string `json:"shippingAddress"`
	AvailableForReels    string `json:"availableForReels"`
	AvailableNext3Months string `json:"availableNext3Months"`
	AvailabilityPeriod   string `json:"availabilityPeriod"`

	// Experience
	CollaboratedAgencies string `json:"collaboratedAgencies"`
	AgenciesList         string `json:"agenciesList"`
	CollaboratedBrands   string `json:"collaboratedBrands"`
	BrandsList           string `json:"brandsList"`

	// Fiscal information
	HasVAT         string   `json:"hasVAT"`
	PaymentMethods []string `json:"paymentMethods"`

	// Terms
	TermsAccepted bool `json:"termsAccepted" validate:"required"`
}

// UpdateTalentRequest - частичное обновление: поле-указатель nil
// означает "не трогать". Price принимает только символы €
// и доступен лишь администратору
type UpdateTalentRequest struct {
	City                 *string   `json:"city"`
	Phone                *string   `json:"phone"`
	Bio                  *string   `json:"bio"`
	SocialChannels       *[]string `json:"socialChannels"`
	SocialLinks          *string   `json:"socialLinks"`
	MediaKitURLs         *[]string `json:"mediaKitUrls"`
	ContentCategories    *[]string `json:"contentCategories"`
	AvailableForProducts *string   `json:"availableForProducts"`
	ShippingAddress      *string   `json:"shippingAddress"`
	AvailableForReels    *string   `json:"availableForReels"`
	AvailableNext3Months *string   `json:"availableNext3Months"`
	AvailabilityPeriod   *string   `json:"availabilityPeriod"`
	HasVAT               *string   `json:"hasVAT"`
	PaymentMethods       *[]string `json:"paymentMethods"`
	Price                *string   `json:"price"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=verified rejected"`
	ReviewNotes string `json:"reviewNotes"`
}

// SetCelebrityRequest - указатель, чтобы отличить пропущенное поле
// от явного false
type SetCelebrityRequest struct {
	IsCelebrity *bool `json:"isCelebrity" validate:"required"`
}

// ExistingApplicationInfo - вложение ответа 409 при повторной подаче
type ExistingApplicationInfo struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type TalentResponse struct {
	ID     string  `json:"id"`
	UserID *string `json:"userId"`
	Email  string  `json:"email"`
	Status string  `json:"status"`

	FullName  string `json:"fullName"`
	BirthYear int    `json:"birthYear"`
	City      string `json:"city"`
	Nickname  string `json:"nickname"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`

	SocialChannels    []string `json:"socialChannels"`
	SocialLinks       string   `json:"socialLinks"`
	MediaKitURLs      []string `json:"mediaKitUrls"`
	ContentCategories []string `json:"contentCategories"`

	AvailableForProducts string `json:"availableForProducts"`
	ShippingAddress      string `json:"shippingAddress"`
	AvailableForReels    string `json:"availableForReels"`
	AvailableNext3Months string `json:"availableNext3Months"`
	AvailabilityPeriod   string `json:"availabilityPeriod"`

	CollaboratedAgencies string `json:"collaboratedAgencies"`
	AgenciesList         string `json:"agenciesList"`
	CollaboratedBrands   string `json:"collaboratedBrands"`
	BrandsList           string `json:"brandsList"`

	HasVAT         string   `json:"hasVat"`
	PaymentMethods []string `json:"paymentMethods"`

	TermsAccepted bool   `json:"termsAccepted"`
	Price         string `json:"price"`
	IsCelebrity   bool   `json:"isCelebrity"`
	ClickCount    int    `json:"clickCount"`

	ReviewedAt  *time.Time `json:"reviewedAt"`
	ReviewedBy  string     `json:"reviewedBy"`
	ReviewNotes string     `json:"reviewNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTalentResponse мапит модель в ответ
func NewTalentResponse(app *models.TalentApplication) TalentResponse {
	return TalentResponse{
		ID:     app.ID,
		UserID: app.UserID,
		Email:  app.Email,
		Status: string(app.Status),

		FullName:  app.FullName,
		BirthYear: app.BirthYear,
		City:      app.City,
		Nickname:  app.Nickname,
		Phone:     app.Phone,
		Bio:       app.Bio,

		SocialChannels:    emptyIfNil(app.SocialChannels),
		SocialLinks:       app.SocialLinks,
		MediaKitURLs:      emptyIfNil(app.MediaKitURLs),
		ContentCategories: emptyIfNil(app.ContentCategories),

		AvailableForProducts: app.AvailableForProducts,
		ShippingAddress:      app.ShippingAddress,
		AvailableForReels:    app.AvailableForReels,
		AvailableNext3Months: app.AvailableNext3Months,
		AvailabilityPeriod:   app.AvailabilityPeriod,

		CollaboratedAgencies: app.CollaboratedAgencies,
		AgenciesList:         app.AgenciesList,
		CollaboratedBrands:   app.CollaboratedBrands,
		BrandsList:           app.BrandsList,

		HasVAT:         app.HasVAT,
		PaymentMethods: emptyIfNil(app.PaymentMethods),

		TermsAccepted: app.TermsAccepted,
		Price:         app.Price,
		IsCelebrity:   app.IsCelebrity,
		ClickCount:    app.ClickCount,

		ReviewedAt:  app.ReviewedAt,
		ReviewedBy:  app.ReviewedBy,
		ReviewNotes: app.ReviewNotes,

		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

// NewTalentResponseList мапит срез моделей, пустой срез вместо null
func NewTalentResponseList(apps []models.TalentApplication) []TalentResponse {
	out := make([]TalentResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewTalentResponse(&apps[i]))
	}
	return out
}

// в JSON наружу всегда уходит [], а не null
func emptyIfNil(list models.StringList) []string {
	if list == nil {
		return []string{}
	}
	return list
}

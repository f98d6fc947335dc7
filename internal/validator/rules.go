package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Поле цены хранит только символы евро: "", "€", "€€", "€€€"...
var priceTierPattern = regexp.MustCompile(`^€*$`)

// Статусы бронирований исторически на итальянском
var bookingStatuses = map[string]bool{
	"in attesa di conferma": true,
	"confermata":            true,
	"fatta":                 true,
	"cancellata":            true,
}

// registerCustomRules регистрирует доменные правила валидации
func registerCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("pricetier", validatePriceTier); err != nil {
		return err
	}
	if err := v.RegisterValidation("bookingstatus", validateBookingStatus); err != nil {
		return err
	}
	return nil
}

// IsPriceTier проверяет формат цены вне тегов валидации: нужна там,
// где проверка прав должна сработать раньше проверки формата
func IsPriceTier(value string) bool {
	return priceTierPattern.MatchString(value)
}

func validatePriceTier(fl validator.FieldLevel) bool {
	return IsPriceTier(fl.Field().String())
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return bookingStatuses[fl.Field().String()]
}

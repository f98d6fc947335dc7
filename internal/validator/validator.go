package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError — кастомный тип ошибки, который содержит
// карту ошибок "поле" -> "сообщение".
type ValidationError struct {
	Errors map[string]string
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator — обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New()

	// Используем JSON-теги в сообщениях об ошибках, чтобы клиент
	// видел имена полей в camelCase, как они определены в DTO.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerCustomRules(v); err != nil {
		// Ошибка времени запуска приложения
		panic(fmt.Sprintf("failed to register custom validation rules: %v", err))
	}

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Это какая-то другая ошибка (например, ошибка рефлексии)
		return err
	}

	customErrors := make(map[string]string)
	for _, fieldErr := range validationErrors {
		customErrors[fieldErr.Field()] = messageForTag(fieldErr)
	}

	return &ValidationError{Errors: customErrors}
}

// messageForTag переводит тег правила в человекочитаемое сообщение
func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "pricetier":
		return `must contain only € symbols (e.g. "€", "€€", "€€€")`
	case "bookingstatus":
		return "must be one of: in attesa di conferma, confermata, fatta, cancellata"
	default:
		return fmt.Sprintf("failed validation rule '%s'", fe.Tag())
	}
}

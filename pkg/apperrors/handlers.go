package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный конверт ошибки.
// Клиенты (фронт) разбирают именно поля success/message/error.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   ErrorCode   `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError переводит error в единый JSON-конверт {success:false, message, error}
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Если это не AppError, оборачиваем в InternalError
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "domain", appErr.Domain, "code", appErr.Code, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Code,
		Details: appErr.Details,
	})
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

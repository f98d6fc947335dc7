// Package contextkeys хранит ключи, под которыми данные
// аутентифицированного пользователя лежат в контексте запроса gin.
// Ключи gin строковые, поэтому константы объявлены строками
package contextkeys

const (
	// UserID - id аутентифицированного пользователя
	UserID = "userID"
	// UserEmail - email аутентифицированного пользователя
	UserEmail = "userEmail"
	// UserRole - роль аутентифицированного пользователя
	UserRole = "role"
)

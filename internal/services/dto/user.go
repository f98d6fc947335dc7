package dto

// AdminCreateUserRequest - админ создает аккаунт; пароль опционален,
// без него аккаунт предзаведен и пароль установит сам пользователь
// при регистрации
type AdminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type UpdateMobileRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

package models

import "time"

type User struct {
	BaseModel
	Email string `gorm:"uniqueIndex;not null"`
	Name  string `gorm:"not null"`
	// PasswordHash nullable: предзаведенные админом аккаунты без пароля
	PasswordHash     *string  `gorm:"column:password"`
	Role             UserRole `gorm:"type:varchar(50);default:'user'"`
	Mobile           string   `gorm:"type:varchar(50);default:''"`
	EmailVerified    bool     `gorm:"default:true"`
	ResetToken       *string
	ResetTokenExpiry *time.Time

	// Relations
	Applications []TalentApplication `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// HasPassword сообщает, установлен ли у аккаунта пароль
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsAdmin сообщает, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

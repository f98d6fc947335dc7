package repositories

import (
	"errors"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserStats - агрегаты по пользователям для админки
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	VerifiedUsers int64 `json:"verifiedUsers"`
	AdminUsers    int64 `json:"adminUsers"`
	RegularUsers  int64 `json:"regularUsers"`
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	UpdateRole(userID string, role models.UserRole) error
	UpdateMobile(userID string, mobile string) error
	UpdatePassword(userID string, passwordHash string) error
	SaveResetToken(email, token string, expiry time.Time) error
	FindByResetToken(token string) (*models.User, error)
	ClearResetToken(userID string) error
	Delete(userID string) error
	GetStats() (*UserStats, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	// Уникальность email обеспечивает индекс, но заранее даем
	// осмысленную ошибку вместо сырой от БД
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Save(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateRole(userID string, role models.UserRole) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateMobile(userID string, mobile string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"mobile":     mobile,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID string, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password":   passwordHash,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SaveResetToken(email, token string, expiry time.Time) error {
	result := r.db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByResetToken находит пользователя по непротухшему токену сброса
func (r *UserRepositoryImpl) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token = ? AND reset_token_expiry > ?", token, time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ClearResetToken сбрасывает пару токен/срок действия вместе
func (r *UserRepositoryImpl) ClearResetToken(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_token":        nil,
		"reset_token_expiry": nil,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete удаляет пользователя; заявки каскадируются внешним ключом
func (r *UserRepositoryImpl) Delete(userID string) error {
	result := r.db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) GetStats() (*UserStats, error) {
	var stats UserStats

	if err := r.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("email_verified = ?", true).Count(&stats.VerifiedUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&stats.AdminUsers).Error; err != nil {
		return nil, err
	}
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers

	return &stats, nil
}

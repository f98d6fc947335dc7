package services

import (
	"talento_backend/internal/auth"
	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"
)

type UserService interface {
	List() ([]dto.UserResponse, error)
	GetByID(id string) (*dto.UserResponse, error)
	AdminCreate(req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	UpdateRole(id string, role string) (*dto.UserResponse, error)
	UpdateMobile(id string, mobile string) (*dto.UserResponse, error)
	Delete(id string) error
	Stats() (*repositories.UserStats, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) List() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserServiceImpl) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// AdminCreate - создание аккаунта администратором. Без пароля аккаунт
// предзаведен: владелец установит пароль при регистрации
func (s *UserServiceImpl) AdminCreate(req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	user := &models.User{
		Email:         req.Email,
		Name:          req.Name,
		Role:          models.UserRoleUser,
		Mobile:        req.Mobile,
		EmailVerified: true,
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("user", "User with this email already exists")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("user created by admin", "email", user.Email, "passwordless", user.PasswordHash == nil)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) UpdateRole(id string, role string) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateRole(id, models.UserRole(role)); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("user role updated", "userId", id, "role", role)
	return s.GetByID(id)
}

func (s *UserServiceImpl) UpdateMobile(id string, mobile string) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateMobile(id, mobile); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	return s.GetByID(id)
}

// Delete удаляет пользователя вместе с его заявками и их медиафайлами
func (s *UserServiceImpl) Delete(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.DatabaseError(err)
	}

	logger.Info("user deleted", "userId", id)
	return nil
}

func (s *UserServiceImpl) Stats() (*repositories.UserStats, error) {
	stats, err := s.userRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

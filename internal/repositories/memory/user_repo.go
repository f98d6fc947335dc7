package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) FindByID(id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepo) FindAll() ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]models.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, user)
	}
	sortByCreatedDesc(users, func(u models.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return users, nil
}

func (r *userRepo) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Save(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) UpdateRole(userID string, role models.UserRole) error {
	return r.mutate(userID, func(u *models.User) { u.Role = role })
}

func (r *userRepo) UpdateMobile(userID string, mobile string) error {
	return r.mutate(userID, func(u *models.User) { u.Mobile = mobile })
}

func (r *userRepo) UpdatePassword(userID string, passwordHash string) error {
	return r.mutate(userID, func(u *models.User) { u.PasswordHash = &passwordHash })
}

func (r *userRepo) SaveResetToken(email, token string, expiry time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, user := range r.s.users {
		if user.Email == email {
			user.ResetToken = &token
			user.ResetTokenExpiry = &expiry
			user.UpdatedAt = time.Now()
			r.s.users[id] = user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (r *userRepo) FindByResetToken(token string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpiry != nil && user.ResetTokenExpiry.After(time.Now()) {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *userRepo) ClearResetToken(userID string) error {
	return r.mutate(userID, func(u *models.User) {
		u.ResetToken = nil
		u.ResetTokenExpiry = nil
	})
}

// Delete повторяет каскад внешних ключей: заявки пользователя
// удаляются вместе с их медиафайлами
func (r *userRepo) Delete(userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.s.users, userID)

	for appID, app := range r.s.talents {
		if app.UserID != nil && *app.UserID == userID {
			delete(r.s.talents, appID)
			for mediaID, media := range r.s.media {
				if media.TalentID != nil && *media.TalentID == appID {
					delete(r.s.media, mediaID)
				}
			}
		}
	}
	return nil
}

func (r *userRepo) GetStats() (*repositories.UserStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats repositories.UserStats
	for _, user := range r.s.users {
		stats.TotalUsers++
		if user.EmailVerified {
			stats.VerifiedUsers++
		}
		if user.Role == models.UserRoleAdmin {
			stats.AdminUsers++
		}
	}
	stats.RegularUsers = stats.TotalUsers - stats.AdminUsers
	return &stats, nil
}

func (r *userRepo) mutate(userID string, fn func(*models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(&user)
	user.UpdatedAt = time.Now()
	r.s.users[userID] = user
	return nil
}

// sortByCreatedDesc сортирует свежие записи первыми; при равных
// временных метках порядок стабилизируется по ID
func sortByCreatedDesc[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}

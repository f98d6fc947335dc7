package memory

import (
	"time"

	"github.com/google/uuid"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

type mediaRepo struct {
	s *Store
}

func (r *mediaRepo) Create(media *models.MediaUpload) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	now := time.Now()
	media.CreatedAt = now
	media.UpdatedAt = now
	if media.UploadedAt.IsZero() {
		media.UploadedAt = now
	}
	r.s.media[media.ID] = *media
	return nil
}

func (r *mediaRepo) FindByID(id string) (*models.MediaUpload, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	media, ok := r.s.media[id]
	if !ok {
		return nil, repositories.ErrMediaNotFound
	}
	return &media, nil
}

func (r *mediaRepo) FindByProviderID(providerID string) (*models.MediaUpload, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, media := range r.s.media {
		if media.ProviderID == providerID {
			m := media
			return &m, nil
		}
	}
	return nil, repositories.ErrMediaNotFound
}

func (r *mediaRepo) FindByUserID(userID string) ([]models.MediaUpload, error) {
	return r.filter(func(m models.MediaUpload) bool {
		return m.UserID != nil && *m.UserID == userID
	}, 0)
}

func (r *mediaRepo) FindByTalentID(talentID string) ([]models.MediaUpload, error) {
	return r.filter(func(m models.MediaUpload) bool {
		return m.TalentID != nil && *m.TalentID == talentID
	}, 0)
}

func (r *mediaRepo) FindAll(limit int) ([]models.MediaUpload, error) {
	return r.filter(func(models.MediaUpload) bool { return true }, limit)
}

func (r *mediaRepo) DeleteByID(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.media[id]; !ok {
		return repositories.ErrMediaNotFound
	}
	delete(r.s.media, id)
	return nil
}

func (r *mediaRepo) GetStats() (*repositories.MediaStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats repositories.MediaStats
	users := make(map[string]struct{})
	talents := make(map[string]struct{})
	for _, media := range r.s.media {
		stats.TotalFiles++
		stats.TotalSize += media.FileSize
		if media.UserID != nil {
			users[*media.UserID] = struct{}{}
		}
		if media.TalentID != nil {
			talents[*media.TalentID] = struct{}{}
		}
	}
	stats.UniqueUsers = int64(len(users))
	stats.UniqueTalents = int64(len(talents))
	return &stats, nil
}

func (r *mediaRepo) filter(keep func(models.MediaUpload) bool, limit int) ([]models.MediaUpload, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var media []models.MediaUpload
	for _, m := range r.s.media {
		if keep(m) {
			media = append(media, m)
		}
	}
	sortByCreatedDesc(media, func(m models.MediaUpload) (time.Time, string) { return m.CreatedAt, m.ID })
	if limit > 0 && len(media) > limit {
		media = media[:limit]
	}
	return media, nil
}

package memory

import (
	"time"

	"github.com/google/uuid"

	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
)

type talentRepo struct {
	s *Store
}

// Create повторяет частичный уникальный индекс: вторая активная заявка
// того же владельца отклоняется под тем же мьютексом, что и вставка
func (r *talentRepo) Create(app *models.TalentApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if app.UserID != nil {
		for _, existing := range r.s.talents {
			if existing.UserID != nil && *existing.UserID == *app.UserID && existing.Status.IsActive() {
				return repositories.ErrActiveApplicationExists
			}
		}
	}

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.s.talents[app.ID] = *app
	return nil
}

func (r *talentRepo) FindByID(id string) (*models.TalentApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.talents[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return &app, nil
}

func (r *talentRepo) FindActiveByUserID(userID string) (*models.TalentApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, app := range r.s.talents {
		if app.UserID != nil && *app.UserID == userID && app.Status.IsActive() {
			a := app
			return &a, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *talentRepo) FindByUserID(userID string) ([]models.TalentApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var apps []models.TalentApplication
	for _, app := range r.s.talents {
		if app.UserID != nil && *app.UserID == userID {
			apps = append(apps, app)
		}
	}
	sortByCreatedDesc(apps, func(a models.TalentApplication) (time.Time, string) { return a.CreatedAt, a.ID })
	return apps, nil
}

func (r *talentRepo) FindAll(status models.ApplicationStatus) ([]models.TalentApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	apps := make([]models.TalentApplication, 0, len(r.s.talents))
	for _, app := range r.s.talents {
		if status != "" && app.Status != status {
			continue
		}
		apps = append(apps, app)
	}
	sortByCreatedDesc(apps, func(a models.TalentApplication) (time.Time, string) { return a.CreatedAt, a.ID })
	return apps, nil
}

func (r *talentRepo) Save(app *models.TalentApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.talents[app.ID]; !ok {
		return repositories.ErrApplicationNotFound
	}
	app.UpdatedAt = time.Now()
	r.s.talents[app.ID] = *app
	return nil
}

func (r *talentRepo) UpdateStatus(id string, status models.ApplicationStatus, reviewedBy, reviewNotes string) (*models.TalentApplication, error) {
	return r.mutate(id, func(a *models.TalentApplication) {
		now := time.Now()
		a.Status = status
		a.ReviewedBy = reviewedBy
		a.ReviewNotes = reviewNotes
		a.ReviewedAt = &now
	})
}

func (r *talentRepo) SetCelebrity(id string, isCelebrity bool) (*models.TalentApplication, error) {
	return r.mutate(id, func(a *models.TalentApplication) { a.IsCelebrity = isCelebrity })
}

func (r *talentRepo) IncrementClicks(id string) (int, error) {
	app, err := r.mutate(id, func(a *models.TalentApplication) { a.ClickCount++ })
	if err != nil {
		return 0, err
	}
	return app.ClickCount, nil
}

func (r *talentRepo) Delete(id string) (*models.TalentApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.talents[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	delete(r.s.talents, id)

	for mediaID, media := range r.s.media {
		if media.TalentID != nil && *media.TalentID == id {
			delete(r.s.media, mediaID)
		}
	}
	return &app, nil
}

func (r *talentRepo) GetStats() (*repositories.TalentStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats repositories.TalentStats
	apps := make([]models.TalentApplication, 0, len(r.s.talents))
	for _, app := range r.s.talents {
		stats.Total++
		switch app.Status {
		case models.ApplicationStatusPending:
			stats.Pending++
		case models.ApplicationStatusVerified:
			stats.Verified++
		case models.ApplicationStatusRejected:
			stats.Rejected++
		}
		apps = append(apps, app)
	}
	sortByCreatedDesc(apps, func(a models.TalentApplication) (time.Time, string) { return a.CreatedAt, a.ID })

	if len(apps) > 5 {
		apps = apps[:5]
	}
	stats.RecentApplications = make([]repositories.ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		stats.RecentApplications = append(stats.RecentApplications, repositories.ApplicationSummary{
			ID:        app.ID,
			FullName:  app.FullName,
			Status:    string(app.Status),
			CreatedAt: app.CreatedAt,
		})
	}
	return &stats, nil
}

func (r *talentRepo) mutate(id string, fn func(*models.TalentApplication)) (*models.TalentApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.talents[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	fn(&app)
	app.UpdatedAt = time.Now()
	r.s.talents[id] = app
	return &app, nil
}

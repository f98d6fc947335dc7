package repositories

import (
	"errors"
	"strings"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("talent application not found")
	// ErrActiveApplicationExists - у владельца уже есть pending/verified заявка
	ErrActiveApplicationExists = errors.New("active application already exists for this user")
)

// ApplicationSummary - краткая строка заявки для статистики
type ApplicationSummary struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TalentStats - агрегаты по заявкам плюс пять последних
type TalentStats struct {
	Total              int64                `json:"total"`
	Pending            int64                `json:"pending"`
	Verified           int64                `json:"verified"`
	Rejected           int64                `json:"rejected"`
	RecentApplications []ApplicationSummary `json:"recentApplications"`
}

type TalentRepository interface {
	Create(app *models.TalentApplication) error
	FindByID(id string) (*models.TalentApplication, error)
	FindActiveByUserID(userID string) (*models.TalentApplication, error)
	FindByUserID(userID string) ([]models.TalentApplication, error)
	FindAll(status models.ApplicationStatus) ([]models.TalentApplication, error)
	Save(app *models.TalentApplication) error
	UpdateStatus(id string, status models.ApplicationStatus, reviewedBy, reviewNotes string) (*models.TalentApplication, error)
	SetCelebrity(id string, isCelebrity bool) (*models.TalentApplication, error)
	IncrementClicks(id string) (int, error)
	Delete(id string) (*models.TalentApplication, error)
	GetStats() (*TalentStats, error)
}

type TalentRepositoryImpl struct {
	db *gorm.DB
}

func NewTalentRepository(db *gorm.DB) TalentRepository {
	return &TalentRepositoryImpl{db: db}
}

// Create вставляет заявку. Гонку "две активных заявки" закрывает
// частичный уникальный индекс ux_talent_applications_active_owner,
// его нарушение переводится в ErrActiveApplicationExists.
func (r *TalentRepositoryImpl) Create(app *models.TalentApplication) error {
	if err := r.db.Create(app).Error; err != nil {
		if isActiveOwnerViolation(err) {
			return ErrActiveApplicationExists
		}
		return err
	}
	return nil
}

func isActiveOwnerViolation(err error) bool {
	return strings.Contains(err.Error(), "ux_talent_applications_active_owner")
}

func (r *TalentRepositoryImpl) FindByID(id string) (*models.TalentApplication, error) {
	var app models.TalentApplication
	err := r.db.First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindActiveByUserID ищет pending/verified заявку владельца
// (rejected не считается - можно подать заново)
func (r *TalentRepositoryImpl) FindActiveByUserID(userID string) (*models.TalentApplication, error) {
	var app models.TalentApplication
	err := r.db.Where("user_id = ? AND status IN ?", userID,
		[]models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusVerified}).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *TalentRepositoryImpl) FindByUserID(userID string) ([]models.TalentApplication, error) {
	var apps []models.TalentApplication
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *TalentRepositoryImpl) FindAll(status models.ApplicationStatus) ([]models.TalentApplication, error) {
	query := r.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []models.TalentApplication
	err := query.Find(&apps).Error
	return apps, err
}

func (r *TalentRepositoryImpl) Save(app *models.TalentApplication) error {
	result := r.db.Save(app)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// UpdateStatus - один UPDATE: статус, рецензент, заметки и штамп времени атомарно
func (r *TalentRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus, reviewedBy, reviewNotes string) (*models.TalentApplication, error) {
	result := r.db.Model(&models.TalentApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"reviewed_by":  reviewedBy,
		"review_notes": reviewNotes,
		"reviewed_at":  time.Now(),
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrApplicationNotFound
	}
	return r.FindByID(id)
}

func (r *TalentRepositoryImpl) SetCelebrity(id string, isCelebrity bool) (*models.TalentApplication, error) {
	result := r.db.Model(&models.TalentApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_celebrity": isCelebrity,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrApplicationNotFound
	}
	return r.FindByID(id)
}

// IncrementClicks увеличивает счетчик на единицу и возвращает новое значение.
// Верхней границы и защиты от накрутки нет - осознанно.
func (r *TalentRepositoryImpl) IncrementClicks(id string) (int, error) {
	result := r.db.Model(&models.TalentApplication{}).Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrApplicationNotFound
	}

	app, err := r.FindByID(id)
	if err != nil {
		return 0, err
	}
	return app.ClickCount, nil
}

// Delete удаляет заявку и возвращает удаленную строку;
// связанные media_uploads каскадируются внешним ключом
func (r *TalentRepositoryImpl) Delete(id string) (*models.TalentApplication, error) {
	app, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).Delete(&models.TalentApplication{}).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (r *TalentRepositoryImpl) GetStats() (*TalentStats, error) {
	var stats TalentStats

	if err := r.db.Model(&models.TalentApplication{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := map[models.ApplicationStatus]*int64{
		models.ApplicationStatusPending:  &stats.Pending,
		models.ApplicationStatusVerified: &stats.Verified,
		models.ApplicationStatusRejected: &stats.Rejected,
	}
	for status, dst := range counts {
		if err := r.db.Model(&models.TalentApplication{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	var recent []models.TalentApplication
	if err := r.db.Select("id", "full_name", "status", "created_at").
		Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return nil, err
	}

	stats.RecentApplications = make([]ApplicationSummary, 0, len(recent))
	for _, app := range recent {
		stats.RecentApplications = append(stats.RecentApplications, ApplicationSummary{
			ID:        app.ID,
			FullName:  app.FullName,
			Status:    string(app.Status),
			CreatedAt: app.CreatedAt,
		})
	}

	return &stats, nil
}

package repositories

import (
	"errors"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media record not found")

// MediaStats - агрегаты по загруженным файлам
type MediaStats struct {
	TotalFiles    int64 `json:"totalFiles"`
	TotalSize     int64 `json:"totalSize"`
	UniqueUsers   int64 `json:"uniqueUsers"`
	UniqueTalents int64 `json:"uniqueTalents"`
}

type MediaRepository interface {
	Create(media *models.MediaUpload) error
	FindByID(id string) (*models.MediaUpload, error)
	FindByProviderID(providerID string) (*models.MediaUpload, error)
	FindByUserID(userID string) ([]models.MediaUpload, error)
	FindByTalentID(talentID string) ([]models.MediaUpload, error)
	FindAll(limit int) ([]models.MediaUpload, error)
	DeleteByID(id string) error
	GetStats() (*MediaStats, error)
}

type MediaRepositoryImpl struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &MediaRepositoryImpl{db: db}
}

func (r *MediaRepositoryImpl) Create(media *models.MediaUpload) error {
	return r.db.Create(media).Error
}

func (r *MediaRepositoryImpl) FindByID(id string) (*models.MediaUpload, error) {
	var media models.MediaUpload
	err := r.db.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepositoryImpl) FindByProviderID(providerID string) (*models.MediaUpload, error) {
	var media models.MediaUpload
	err := r.db.First(&media, "provider_id = ?", providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepositoryImpl) FindByUserID(userID string) ([]models.MediaUpload, error) {
	var media []models.MediaUpload
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&media).Error
	return media, err
}

func (r *MediaRepositoryImpl) FindByTalentID(talentID string) ([]models.MediaUpload, error) {
	var media []models.MediaUpload
	err := r.db.Where("talent_id = ?", talentID).Order("created_at DESC").Find(&media).Error
	return media, err
}

func (r *MediaRepositoryImpl) FindAll(limit int) ([]models.MediaUpload, error) {
	var media []models.MediaUpload
	err := r.db.Order("created_at DESC").Limit(limit).Find(&media).Error
	return media, err
}

func (r *MediaRepositoryImpl) DeleteByID(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.MediaUpload{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) GetStats() (*MediaStats, error) {
	var stats MediaStats

	if err := r.db.Model(&models.MediaUpload{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}

	// SUM по пустой таблице дает NULL
	var totalSize *int64
	if err := r.db.Model(&models.MediaUpload{}).Select("SUM(file_size)").Scan(&totalSize).Error; err != nil {
		return nil, err
	}
	if totalSize != nil {
		stats.TotalSize = *totalSize
	}

	if err := r.db.Model(&models.MediaUpload{}).Where("user_id IS NOT NULL").
		Distinct("user_id").Count(&stats.UniqueUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.MediaUpload{}).Where("talent_id IS NOT NULL").
		Distinct("talent_id").Count(&stats.UniqueTalents).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

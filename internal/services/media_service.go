package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"

	"talento_backend/internal/logger"
	"talento_backend/internal/models"
	"talento_backend/internal/repositories"
	"talento_backend/internal/services/dto"
	"talento_backend/internal/storage"
	"talento_backend/pkg/apperrors"
)

// UploadFile - один файл из multipart запроса
type UploadFile struct {
	OriginalName string
	Size         int64
	MimeType     string
	Reader       io.Reader
}

// MediaListResult - файлы вместе с агрегатами
type MediaListResult struct {
	Files []dto.MediaResponse
	Stats *repositories.MediaStats
}

type MediaService interface {
	Upload(ctx context.Context, userID, talentID *string, files []UploadFile) ([]dto.MediaResponse, error)
	Delete(ctx context.Context, id string) (*dto.MediaResponse, error)
	ListAll(limit int) (*MediaListResult, error)
	ListByUser(userID string) ([]dto.MediaResponse, error)
	ListByTalent(talentID string) ([]dto.MediaResponse, error)
	Stats() (*repositories.MediaStats, error)
}

type MediaServiceImpl struct {
	mediaRepo repositories.MediaRepository
	store     storage.Storage
	folder    string
	maxSize   int64
	maxFiles  int
}

func NewMediaService(
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
	folder string,
	maxSize int64,
	maxFiles int,
) MediaService {
	return &MediaServiceImpl{
		mediaRepo: mediaRepo,
		store:     store,
		folder:    folder,
		maxSize:   maxSize,
		maxFiles:  maxFiles,
	}
}

// Upload загружает пачку файлов. Пачка атомарна: ошибка на любом файле
// откатывает уже загруженные (best-effort) и возвращает ошибку целиком
func (s *MediaServiceImpl) Upload(ctx context.Context, userID, talentID *string, files []UploadFile) ([]dto.MediaResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No files uploaded")
	}
	if len(files) > s.maxFiles {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Too many files: maximum is %d", s.maxFiles))
	}
	for _, f := range files {
		if f.Size > s.maxSize {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("File %q exceeds the %d MB limit", f.OriginalName, s.maxSize/(1024*1024)))
		}
	}

	uploaded := make([]models.MediaUpload, 0, len(files))

	rollback := func() {
		for _, m := range uploaded {
			if err := s.store.Delete(ctx, m.ProviderID); err != nil {
				logger.WithError(err).Warn("rollback: failed to delete binary", "providerId", m.ProviderID)
			}
			if err := s.mediaRepo.DeleteByID(m.ID); err != nil && !apperrors.Is(err, repositories.ErrMediaNotFound) {
				logger.WithError(err).Warn("rollback: failed to delete media record", "mediaId", m.ID)
			}
		}
	}

	for _, f := range files {
		key := s.objectKey(f.OriginalName)

		result, err := s.store.Put(ctx, storage.PutInput{
			Key:          key,
			Reader:       f.Reader,
			Size:         f.Size,
			ContentType:  f.MimeType,
			OriginalName: f.OriginalName,
		})
		if err != nil {
			logger.WithError(err).Error("file upload failed", "file", f.OriginalName)
			rollback()
			return nil, apperrors.ExternalServiceError("storage", err)
		}

		metadata, _ := json.Marshal(map[string]string{
			"providerId": result.ProviderID,
			"url":        result.URL,
			"uploadedAt": time.Now().Format(time.RFC3339),
		})

		media := models.MediaUpload{
			UserID:       userID,
			TalentID:     talentID,
			Filename:     key,
			OriginalName: f.OriginalName,
			URL:          result.URL,
			ProviderID:   result.ProviderID,
			FileSize:     f.Size,
			MimeType:     f.MimeType,
			Metadata:     datatypes.JSON(metadata),
			UploadedAt:   time.Now(),
		}
		if err := s.mediaRepo.Create(&media); err != nil {
			if derr := s.store.Delete(ctx, result.ProviderID); derr != nil {
				logger.WithError(derr).Warn("failed to delete orphaned binary", "providerId", result.ProviderID)
			}
			rollback()
			return nil, apperrors.DatabaseError(err)
		}

		uploaded = append(uploaded, media)
	}

	logger.Info("media batch uploaded", "count", len(uploaded))
	return dto.NewMediaResponseList(uploaded), nil
}

// Delete удаляет файл по id записи или по идентификатору провайдера.
// Отсутствие бинарника у провайдера не ошибка: запись метаданных
// вычищается в любом случае
func (s *MediaServiceImpl) Delete(ctx context.Context, id string) (*dto.MediaResponse, error) {
	media, err := s.mediaRepo.FindByID(id)
	if apperrors.Is(err, repositories.ErrMediaNotFound) {
		media, err = s.mediaRepo.FindByProviderID(id)
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrMediaNotFound) {
			return nil, apperrors.NewNotFoundError("media", "File not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	if err := s.store.Delete(ctx, media.ProviderID); err != nil {
		logger.WithError(err).Warn("provider delete failed, removing record anyway", "providerId", media.ProviderID)
	}

	if err := s.mediaRepo.DeleteByID(media.ID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("media file deleted", "mediaId", media.ID, "file", media.OriginalName)
	resp := dto.NewMediaResponse(media)
	return &resp, nil
}

func (s *MediaServiceImpl) ListAll(limit int) (*MediaListResult, error) {
	if limit <= 0 {
		limit = 100
	}

	files, err := s.mediaRepo.FindAll(limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats, err := s.mediaRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &MediaListResult{
		Files: dto.NewMediaResponseList(files),
		Stats: stats,
	}, nil
}

func (s *MediaServiceImpl) ListByUser(userID string) ([]dto.MediaResponse, error) {
	files, err := s.mediaRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewMediaResponseList(files), nil
}

func (s *MediaServiceImpl) ListByTalent(talentID string) ([]dto.MediaResponse, error) {
	files, err := s.mediaRepo.FindByTalentID(talentID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewMediaResponseList(files), nil
}

func (s *MediaServiceImpl) Stats() (*repositories.MediaStats, error) {
	stats, err := s.mediaRepo.GetStats()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return stats, nil
}

// objectKey - уникальное имя объекта: штамп времени плюс случайный
// суффикс, расширение сохраняется от исходного файла
func (s *MediaServiceImpl) objectKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := fmt.Sprintf("%d-%09d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return fmt.Sprintf("%s/talent-%s%s", s.folder, suffix, ext)
}

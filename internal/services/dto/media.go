package dto

import (
	"time"

	"talento_backend/internal/models"
)

type MediaResponse struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"userId"`
	TalentID     *string   `json:"talentId"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	ProviderID   string    `json:"providerId"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewMediaResponse мапит модель в ответ
func NewMediaResponse(media *models.MediaUpload) MediaResponse {
	return MediaResponse{
		ID:           media.ID,
		UserID:       media.UserID,
		TalentID:     media.TalentID,
		Filename:     media.Filename,
		OriginalName: media.OriginalName,
		URL:          media.URL,
		ProviderID:   media.ProviderID,
		FileSize:     media.FileSize,
		MimeType:     media.MimeType,
		UploadedAt:   media.UploadedAt,
		CreatedAt:    media.CreatedAt,
	}
}

// NewMediaResponseList мапит срез моделей, пустой срез вместо null
func NewMediaResponseList(media []models.MediaUpload) []MediaResponse {
	out := make([]MediaResponse, 0, len(media))
	for i := range media {
		out = append(out, NewMediaResponse(&media[i]))
	}
	return out
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// MediaUpload - метаданные файла, сам бинарник лежит у провайдера хранилища.
// ProviderID - уникальный идентификатор бинарника у провайдера,
// им же выполняется удаление.
type MediaUpload struct {
	BaseModel
	UserID   *string `gorm:"type:varchar(255);index"`
	TalentID *string `gorm:"type:varchar(255);index"`

	Filename     string `gorm:"not null"`
	OriginalName string `gorm:"not null"`
	URL          string `gorm:"type:text;not null"`
	ProviderID   string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FileSize     int64  `gorm:"default:0"`
	MimeType     string `gorm:"type:varchar(100)"`

	// Сырой ответ провайдера, на случай разбора инцидентов
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	UploadedAt time.Time `gorm:"default:now()"`
}

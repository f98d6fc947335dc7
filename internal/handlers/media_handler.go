package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/services"
	"talento_backend/pkg/apperrors"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

// RegisterRoutes регистрирует маршруты загрузки и выдачи медиафайлов
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	upload := rg.Group("/upload")
	{
		upload.POST("/media-kit", authMW, h.Upload)
		upload.DELETE("/media-kit/:id", authMW, h.Delete)
	}

	media := rg.Group("/media")
	{
		media.GET("/user/:userId", authMW, adminMW, h.ListByUser)
		media.GET("/talent/:talentId", h.ListByTalent)
		media.GET("/stats", authMW, adminMW, h.Stats)
	}

	rg.GET("/admin/media-kits", authMW, adminMW, h.ListAll)
	// идентификатор провайдера содержит слэши, поэтому wildcard
	rg.DELETE("/admin/media-kits/*providerId", authMW, adminMW, h.DeleteByProvider)
}

// Upload принимает multipart пачку в поле mediaKit.
// Владелец и талант привязываются через поля формы userId и talentId
func (h *MediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	fileHeaders := form.File["mediaKit"]
	if len(fileHeaders) == 0 {
		h.HandleServiceError(c, apperrors.NewBadRequestError("No files uploaded"))
		return
	}

	files := make([]services.UploadFile, 0, len(fileHeaders))
	openFiles := make([]interface{ Close() error }, 0, len(fileHeaders))
	defer func() {
		for _, f := range openFiles {
			f.Close()
		}
	}()

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			h.HandleServiceError(c, apperrors.InternalError(err))
			return
		}
		openFiles = append(openFiles, f)
		files = append(files, services.UploadFile{
			OriginalName: fh.Filename,
			Size:         fh.Size,
			MimeType:     fh.Header.Get("Content-Type"),
			Reader:       f,
		})
	}

	uploaded, err := h.mediaService.Upload(c.Request.Context(),
		optionalFormValue(c, "userId"), optionalFormValue(c, "talentId"), files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	urls := make([]string, 0, len(uploaded))
	for _, f := range uploaded {
		urls = append(urls, f.URL)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   uploaded,
		"urls":    urls,
		"message": "Files uploaded and saved successfully",
	})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	deleted, err := h.mediaService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File deleted successfully",
		"deletedFile": gin.H{
			"id":           deleted.ID,
			"filename":     deleted.Filename,
			"originalName": deleted.OriginalName,
		},
	})
}

// DeleteByProvider удаляет файл по идентификатору провайдера
func (h *MediaHandler) DeleteByProvider(c *gin.Context) {
	providerID := strings.TrimPrefix(c.Param("providerId"), "/")
	if providerID == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Provider identifier is required"))
		return
	}

	deleted, err := h.mediaService.Delete(c.Request.Context(), providerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File deleted successfully",
		"deletedFile": gin.H{
			"id":           deleted.ID,
			"filename":     deleted.Filename,
			"originalName": deleted.OriginalName,
		},
	})
}

func (h *MediaHandler) ListAll(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.mediaService.ListAll(limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Files,
		"count":   len(result.Files),
		"stats":   result.Stats,
	})
}

func (h *MediaHandler) ListByUser(c *gin.Context) {
	files, err := h.mediaService.ListByUser(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    files,
		"count":   len(files),
	})
}

func (h *MediaHandler) ListByTalent(c *gin.Context) {
	files, err := h.mediaService.ListByTalent(c.Param("talentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    files,
		"count":   len(files),
	})
}

func (h *MediaHandler) Stats(c *gin.Context) {
	stats, err := h.mediaService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func optionalFormValue(c *gin.Context, key string) *string {
	if v := c.PostForm(key); v != "" {
		return &v
	}
	return nil
}

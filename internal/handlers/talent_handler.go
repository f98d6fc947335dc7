package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/middleware"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
)

type TalentHandler struct {
	*BaseHandler
	talentService services.TalentService
}

func NewTalentHandler(base *BaseHandler, talentService services.TalentService) *TalentHandler {
	return &TalentHandler{
		BaseHandler:   base,
		talentService: talentService,
	}
}

// RegisterRoutes регистрирует маршруты заявок и витрины талантов
func (h *TalentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	applications := rg.Group("/talent/applications")
	{
		applications.POST("", authMW, h.Create)
		applications.GET("", h.List)
		applications.GET("/me", authMW, h.Me)
		applications.GET("/:id", authMW, adminMW, h.GetByID)
		applications.PATCH("/:id", authMW, h.Update)
		applications.PATCH("/:id/status", authMW, adminMW, h.UpdateStatus)
		applications.DELETE("/:id", authMW, adminMW, h.Delete)
	}

	rg.GET("/talent/stats", authMW, adminMW, h.Stats)

	talents := rg.Group("/talents")
	{
		talents.GET("", h.ListVerified)
		talents.PATCH("/:talentId/celebrity-status", authMW, adminMW, h.SetCelebrity)
		talents.POST("/:talentId/track-click", h.TrackClick)
	}
}

func (h *TalentHandler) Create(c *gin.Context) {
	var req dto.CreateTalentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.talentService.Create(h.Caller(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Application submitted successfully",
		"data":    app,
	})
}

func (h *TalentHandler) List(c *gin.Context) {
	result, err := h.talentService.List(c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Applications,
		"count":   len(result.Applications),
		"stats": gin.H{
			"total":    result.Stats.Total,
			"pending":  result.Stats.Pending,
			"verified": result.Stats.Verified,
			"rejected": result.Stats.Rejected,
		},
	})
}

func (h *TalentHandler) Me(c *gin.Context) {
	app, err := h.talentService.Me(middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    app,
	})
}

func (h *TalentHandler) GetByID(c *gin.Context) {
	app, err := h.talentService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    app,
	})
}

func (h *TalentHandler) Update(c *gin.Context) {
	var req dto.UpdateTalentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.talentService.Update(h.Caller(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application updated successfully",
		"data":    app,
	})
}

func (h *TalentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.talentService.UpdateStatus(h.Caller(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application " + req.Status + " successfully",
		"data":    app,
	})
}

func (h *TalentHandler) Delete(c *gin.Context) {
	app, err := h.talentService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application deleted successfully",
		"deletedApplication": gin.H{
			"id":       app.ID,
			"fullName": app.FullName,
			"email":    app.Email,
		},
	})
}

func (h *TalentHandler) Stats(c *gin.Context) {
	stats, err := h.talentService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func (h *TalentHandler) ListVerified(c *gin.Context) {
	talents, err := h.talentService.ListVerified()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    talents,
		"count":   len(talents),
	})
}

func (h *TalentHandler) SetCelebrity(c *gin.Context) {
	var req dto.SetCelebrityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.talentService.SetCelebrity(c.Param("talentId"), *req.IsCelebrity)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Celebrity status updated successfully",
		"data":    app,
	})
}

func (h *TalentHandler) TrackClick(c *gin.Context) {
	count, err := h.talentService.TrackClick(c.Param("talentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"clickCount": count,
	})
}

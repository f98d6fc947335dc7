package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

// RegisterRoutes регистрирует маршруты бронирований
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	bookings := rg.Group("/bookings", authMW)
	{
		bookings.POST("", h.Create)
		bookings.GET("", adminMW, h.List)
		bookings.GET("/user/:userId", h.ListByUser)
		bookings.GET("/:bookingId", h.GetByID)
		bookings.PATCH("/:bookingId/status", adminMW, h.UpdateStatus)
		bookings.DELETE("/:bookingId", adminMW, h.Delete)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(h.Caller(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    booking,
	})
}

func (h *BookingHandler) List(c *gin.Context) {
	result, err := h.bookingService.List(c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Bookings,
		"count":   len(result.Bookings),
		"stats":   result.Stats,
	})
}

func (h *BookingHandler) ListByUser(c *gin.Context) {
	bookings, err := h.bookingService.ListByUser(h.Caller(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
		"count":   len(bookings),
	})
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.bookingService.GetByID(h.Caller(c), c.Param("bookingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Param("bookingId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated successfully",
		"data":    booking,
	})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingService.Delete(c.Param("bookingId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted successfully",
	})
}

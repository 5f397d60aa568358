// Package controllers controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/middleware"
	"github.com/dalibouzir/MeriemBooking-sub000/models"
	"github.com/dalibouzir/MeriemBooking-sub000/services"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// bookingMessages is the localized copy for the booking outcomes.
var bookingMessages = map[string]map[string]string{
	"booked": {
		"ar": "تم حجز مكالمتك المجانية، ستصلك دعوة التقويم عبر البريد الإلكتروني.",
		"en": "Your free call is booked. A calendar invite is on its way to your inbox.",
	},
	"slot_taken": {
		"ar": "عذراً، هذا الموعد لم يعد متاحاً. الرجاء اختيار موعد آخر.",
		"en": "Sorry, this time is no longer available. Please pick another slot.",
	},
}

// BookingController serves the public free-call endpoints.
type BookingController struct {
	service services.BookingServiceInterface
}

// NewBookingController creates a new BookingController.
func NewBookingController(service services.BookingServiceInterface) *BookingController {
	return &BookingController{service: service}
}

// ListSlots returns the open, unbooked, future slots.
func (bc *BookingController) ListSlots(c *gin.Context) {
	slots, err := bc.service.ListOpenSlots(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[ListSlots] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slots"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "count": len(slots)})
}

// Book reserves a slot. Taking the slot is atomic; a concurrent second
// caller gets slot_taken, never a double booking.
func (bc *BookingController) Book(c *gin.Context) {
	var req models.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lang := middleware.Lang(c)
	reservation, err := bc.service.Book(c.Request.Context(), req)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"field": verr.Field, "error": verr.Message})
		case errors.Is(err, store.ErrSlotUnavailable), errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusConflict, gin.H{"status": "slot_taken", "message": bookingMessages["slot_taken"][lang]})
		default:
			logger.Error.Printf("[Book] reservation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      "booked",
		"reservation": reservation,
		"message":     bookingMessages["booked"][lang],
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "skybook/database/repository/booking"
	"skybook/middleware"
	"skybook/services/booking"
)

// BookingHandler serves booking lookups for the authenticated user.
type BookingHandler struct {
	Bookings booking.Service
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: svc, Logger: logger}
}

// GetBookingByID returns a single booking. Bookings belong to the user who
// made them; anyone else gets a 404, not a 403, to avoid confirming the id.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	record, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("booking lookup failed", zap.String("bookingId", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}
	if record.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetUserBookings lists the authenticated user's bookings.
func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	records, err := h.Bookings.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("booking list failed", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

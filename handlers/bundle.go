// File: skybook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	GuestTokenHandler gin.HandlerFunc

	// Chat endpoints
	HandleChat   gin.HandlerFunc
	ResetSession gin.HandlerFunc

	// Booking endpoints
	GetBookingByID  gin.HandlerFunc
	GetUserBookings gin.HandlerFunc
}

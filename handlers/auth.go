package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skybook/utils"
)

const guestTokenTTL = 24 * time.Hour

// GuestTokenHandler issues a short-lived token for an anonymous chat user.
// The frontend calls this once and sends the token on every chat request.
func GuestTokenHandler(c *gin.Context) {
	userID := "guest-" + uuid.New().String()
	token, err := utils.GenerateToken(userID, guestTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    userID,
		"expires_in": int(guestTokenTTL.Seconds()),
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/middleware"
	"github.com/tailorlink/tailorlink-api/models"
)

// getCurrentUser resolves the authenticated user's database row from the
// Auth0 subject in the request context. On failure it writes the error
// response and returns false; handlers should just return.
func getCurrentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

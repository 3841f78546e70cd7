package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
)

// DecideApplicationRequest represents the request body for an admin decision
// on a tailor application
type DecideApplicationRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// requireAdmin checks the current user's role. On failure it writes the
// error response and returns false.
func requireAdmin(c *gin.Context) (*models.User, bool) {
	user, ok := getCurrentUser(c)
	if !ok {
		return nil, false
	}

	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admins can manage tailor applications",
			},
		})
		return nil, false
	}

	return user, true
}

// ListApplications handles GET /api/v1/admin/applications - lists tailor
// applications for review, newest first, optionally filtered by status
func ListApplications(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		normalized, valid := models.NormalizeApplicationStatus(status)
		if !valid {
			// Unknown filter value matches nothing
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    []models.TailorApplication{},
			})
			return
		}
		query = query.Where("status = ?", normalized)
	}

	var applications []models.TailorApplication
	if err := query.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch applications",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applications,
	})
}

// DecideApplication handles PUT /api/v1/admin/applications/:id - approves or
// rejects a tailor application. Re-deciding an already-decided application
// is allowed and overwrites the previous notes. The mutated record is
// returned so callers don't have to re-fetch the whole list.
func DecideApplication(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	applicationID := c.Param("id")
	if applicationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Application ID is required",
			},
		})
		return
	}

	// Parse request body
	var req DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Only approved/rejected are decisions; pending is the initial state
	if !models.IsValidApplicationDecision(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DECISION",
				"message": "Status must be 'approved' or 'rejected'",
			},
		})
		return
	}

	db := config.GetDB()
	var application models.TailorApplication
	if err := db.First(&application, "id = ?", applicationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPLICATION_NOT_FOUND",
				"message": "Tailor application not found",
			},
		})
		return
	}

	application.Status = req.Status
	application.AdminNotes = req.AdminNotes

	if err := db.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update application status",
			},
		})
		return
	}

	// Promote the applicant's account on approval so tailor-side features
	// (orders, chats) open up
	if req.Status == models.ApplicationStatusApproved {
		if err := db.Model(&models.User{}).
			Where("id = ?", application.UserID).
			Update("role", "tailor").Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update applicant role",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    application,
	})
}

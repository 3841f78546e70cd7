package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
)

// ApplyAsTailorRequest represents the request body for a tailor application
type ApplyAsTailorRequest struct {
	BusinessName    string   `json:"business_name" binding:"required"`
	ExperienceYears int      `json:"experience_years" binding:"gte=0"`
	Specializations []string `json:"specializations"`
	ShopAddress     string   `json:"shop_address" binding:"required"`
	City            string   `json:"city" binding:"required"`
	Pincode         string   `json:"pincode" binding:"required"`
	Phone           string   `json:"phone" binding:"required"`
	PricingRange    string   `json:"pricing_range" binding:"required"`
	WorkingHours    string   `json:"working_hours"`
}

// ApplyAsTailor handles POST /api/v1/tailors/apply - submits a tailor
// application for admin review. All validation happens before any write.
func ApplyAsTailor(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Parse request body
	var req ApplyAsTailorRequest
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

	// An application needs at least one non-blank specialization
	specializations := make([]string, 0, len(req.Specializations))
	for _, spec := range req.Specializations {
		if trimmed := strings.TrimSpace(spec); trimmed != "" {
			specializations = append(specializations, trimmed)
		}
	}
	if len(specializations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_SPECIALIZATIONS",
				"message": "Please add at least one specialization",
			},
		})
		return
	}

	if !models.IsValidPricingRange(req.PricingRange) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PRICING_RANGE",
				"message": "Pricing range must be one of: budget, mid-range, premium, luxury",
			},
		})
		return
	}

	db := config.GetDB()

	// One application per user
	var existing models.TailorApplication
	if err := db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPLICATION_EXISTS",
				"message": "You have already submitted a tailor application",
			},
		})
		return
	}

	specsJSON, err := json.Marshal(specializations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to encode specializations",
			},
		})
		return
	}

	application := models.TailorApplication{
		UserID:          user.ID,
		BusinessName:    req.BusinessName,
		ExperienceYears: req.ExperienceYears,
		Specializations: datatypes.JSON(specsJSON),
		ShopAddress:     req.ShopAddress,
		City:            req.City,
		Pincode:         req.Pincode,
		Phone:           req.Phone,
		PricingRange:    req.PricingRange,
		WorkingHours:    req.WorkingHours,
		Status:          models.ApplicationStatusPending,
	}

	if err := db.Create(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to submit application",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    application,
	})
}

// ListTailors handles GET /api/v1/tailors - lists approved tailors for
// public browsing, newest first
func ListTailors(c *gin.Context) {
	db := config.GetDB()

	var tailors []models.TailorApplication
	if err := db.Where("status = ?", models.ApplicationStatusApproved).
		Order("created_at DESC").
		Find(&tailors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch tailors",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tailors,
	})
}

// GetTailor handles GET /api/v1/tailors/:id - fetches one approved tailor
func GetTailor(c *gin.Context) {
	tailorID := c.Param("id")
	if tailorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Tailor ID is required",
			},
		})
		return
	}

	db := config.GetDB()
	var tailor models.TailorApplication
	if err := db.Where("id = ? AND status = ?", tailorID, models.ApplicationStatusApproved).
		First(&tailor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TAILOR_NOT_FOUND",
				"message": "Tailor not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tailor,
	})
}

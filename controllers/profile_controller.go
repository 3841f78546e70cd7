package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/services"
	"github.com/tailorlink/tailorlink-api/utils"
)

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"omitempty"`
	Phone    string `json:"phone" binding:"omitempty"`
	Address  string `json:"address" binding:"omitempty"`
	City     string `json:"city" binding:"omitempty"`
	Pincode  string `json:"pincode" binding:"omitempty"`
}

// GetMyProfile handles GET /api/v1/users/me/profile - gets the current
// user's profile, creating an empty one seeded with the account name on
// first access.
func GetMyProfile(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var profile models.Profile
	err := db.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			UserID:   user.ID,
			FullName: user.Name,
		}
		if err := db.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create profile",
				},
			})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch profile",
			},
		})
		return
	}

	attachAvatarURL(&profile)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateMyProfile handles PUT /api/v1/users/me/profile - upserts the current
// user's profile. Only the owning user can reach their own row.
func UpdateMyProfile(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Parse request body
	var req UpdateProfileRequest
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

	db := config.GetDB()
	var profile models.Profile
	err := db.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: user.ID}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch profile",
			},
		})
		return
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.City = req.City
	profile.Pincode = req.Pincode

	if err := db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
			},
		})
		return
	}

	attachAvatarURL(&profile)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UploadAvatar handles POST /api/v1/users/me/avatar - uploads an avatar
// image to S3 and stores its key on the profile
func UploadAvatar(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Avatar file is required",
			},
		})
		return
	}

	// Validate format and size before touching S3
	if err := utils.ValidateAvatarFile(fileHeader); err != nil {
		uploadErr := err.(*utils.FileUploadError)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "S3_ERROR",
				"message": "File storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "S3_ERROR",
				"message": "Failed to upload avatar",
			},
		})
		return
	}

	db := config.GetDB()
	var profile models.Profile
	err = db.Where("user_id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: user.ID, FullName: user.Name}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch profile",
			},
		})
		return
	}

	profile.AvatarS3Key = &s3Key
	if err := db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update profile",
			},
		})
		return
	}

	attachAvatarURL(&profile)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// attachAvatarURL fills the computed presigned URL for the profile's avatar
func attachAvatarURL(profile *models.Profile) {
	if profile.AvatarS3Key == nil || *profile.AvatarS3Key == "" {
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		return
	}

	url, err := s3Service.GetPresignedURL(*profile.AvatarS3Key)
	if err != nil {
		log.Printf("Failed to generate avatar URL for profile %d: %v", profile.ID, err)
		return
	}
	profile.AvatarURL = &url
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/services"
)

// CreateChatRequest represents the request body for opening a chat with a tailor
type CreateChatRequest struct {
	TailorID string `json:"tailor_id" binding:"required"` // tailor application id
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// chatRepo returns the repository bound to the current database. Tests swap
// the database via config.SetDB, so the repository is built per request.
func chatRepo() services.ChatRepository {
	return services.NewChatRepository(config.GetDB())
}

// ListChats handles GET /api/v1/chats - lists the caller's conversations as
// per-viewer summaries, most recently active first
func ListChats(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	summaries, err := chatRepo().ListChats(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch chats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
	})
}

// CreateChat handles POST /api/v1/chats - finds or creates the conversation
// between the caller and a tailor
func CreateChat(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Parse request body
	var req CreateChatRequest
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

	// Resolve the tailor application to its owning user account
	db := config.GetDB()
	var tailor models.TailorApplication
	if err := db.Where("id = ? AND status = ?", req.TailorID, models.ApplicationStatusApproved).
		First(&tailor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TAILOR_NOT_FOUND",
				"message": "Tailor not found or not approved",
			},
		})
		return
	}

	chat, err := chatRepo().FindOrCreateChat(user, tailor.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to open chat",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    chat,
	})
}

// ListMessages handles GET /api/v1/chats/:id/messages - lists a chat's
// messages in ascending timestamp order
func ListMessages(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	repo := chatRepo()
	chat, ok := fetchChat(c, repo)
	if !ok {
		return
	}

	messages, err := repo.ListMessages(chat, user)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to view this chat",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch messages",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// SendMessage handles POST /api/v1/chats/:id/messages - appends a message to
// a chat. Whitespace-only text is rejected before anything is stored.
func SendMessage(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	repo := chatRepo()
	chat, ok := fetchChat(c, repo)
	if !ok {
		return
	}

	// Parse request body
	var req SendMessageRequest
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

	message, err := repo.AppendMessage(chat, user, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_MESSAGE",
					"message": "Message text cannot be empty",
				},
			})
		case errors.Is(err, services.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You do not have permission to message in this chat",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to send message",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// fetchChat loads the chat from the :id parameter. On failure it writes the
// error response and returns false.
func fetchChat(c *gin.Context, repo services.ChatRepository) (*models.Chat, bool) {
	chatID := c.Param("id")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Chat ID is required",
			},
		})
		return nil, false
	}

	chat, err := repo.GetChat(chatID)
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CHAT_NOT_FOUND",
					"message": "Chat not found",
				},
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch chat",
			},
		})
		return nil, false
	}

	return chat, true
}

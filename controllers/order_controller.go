package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
)

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	TailorID            string     `json:"tailor_id" binding:"required"`
	ItemType            string     `json:"item_type" binding:"required"`
	Description         string     `json:"description"`
	PriceQuoted         int        `json:"price_quoted" binding:"required,gt=0"`
	EstimatedCompletion *time.Time `json:"estimated_completion"`
}

// UpdateOrderStatusRequest represents the request body for an order status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - places a new order with an
// approved tailor (customers only)
func CreateOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	// Check if user is a customer (only customers can place orders)
	if user.Role != "customer" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only customers can place orders",
			},
		})
		return
	}

	// Parse request body
	var req CreateOrderRequest
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

	// The tailor must exist and be approved
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

	order := models.Order{
		CustomerID:          user.ID,
		TailorID:            tailor.ID,
		TailorName:          tailor.BusinessName,
		ItemType:            req.ItemType,
		Description:         req.Description,
		Status:              models.OrderStatusPending,
		PriceQuoted:         req.PriceQuoted,
		EstimatedCompletion: req.EstimatedCompletion,
	}

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists the caller's orders, newest
// first. Customers see orders they placed; tailors see orders assigned to
// their business. An optional status filter is matched case-insensitively;
// an unrecognized value yields an empty list, not an error.
func ListOrders(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Order("created_at DESC")

	switch user.Role {
	case "tailor":
		var application models.TailorApplication
		if err := db.Where("user_id = ?", user.ID).First(&application).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TAILOR_NOT_FOUND",
					"message": "No tailor application found for this account",
				},
			})
			return
		}
		query = query.Where("tailor_id = ?", application.ID)
	default:
		query = query.Where("customer_id = ?", user.ID)
	}

	if filter := c.Query("status"); filter != "" {
		normalized, valid := models.NormalizeOrderStatus(filter)
		if !valid {
			// Unknown filter value matches nothing
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    []models.Order{},
			})
			return
		}
		query = query.Where("status = ?", normalized)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order for its
// customer or its tailor
func GetOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOrderForUser(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":        order,
			"status_label": models.FormatStatusLabel(order.Status),
		},
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order
// through its lifecycle. Payment has its own endpoint; this one covers the
// service-provider transitions (in_progress, completed) and cancellation.
func UpdateOrderStatus(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOrderForUser(c, user)
	if !ok {
		return
	}

	// Parse request body
	var req UpdateOrderStatusRequest
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

	newStatus, valid := models.NormalizeOrderStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Unknown order status",
			},
		})
		return
	}

	// Payment must go through the payment endpoint
	if newStatus == models.OrderStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Use the payment endpoint to pay for an order",
			},
		})
		return
	}

	// Work progress is driven from the tailor side. Customers may only
	// cancel; in_progress and completed require the assigned tailor or an
	// admin.
	if user.Role == "customer" && newStatus != models.OrderStatusCancelled {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the assigned tailor can update work progress",
			},
		})
		return
	}

	if !models.ValidOrderTransition(order.Status, newStatus) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Order cannot move from '" + order.Status + "' to '" + newStatus + "'",
			},
		})
		return
	}

	db := config.GetDB()
	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.OrderStatusCompleted {
		now := time.Now()
		updates["actual_completion"] = &now
	}

	if err := db.Model(order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// fetchOrderForUser loads the order from the :id parameter and checks the
// caller is its customer or its tailor. On failure it writes the error
// response and returns false.
func fetchOrderForUser(c *gin.Context, user *models.User) (*models.Order, bool) {
	orderID := c.Param("id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID is required",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return nil, false
	}

	// Authorization check: customers see their own orders, tailors see
	// orders assigned to their business
	canAccess := false
	switch user.Role {
	case "customer":
		canAccess = order.CustomerID == user.ID
	case "tailor":
		var application models.TailorApplication
		if err := db.Where("user_id = ?", user.ID).First(&application).Error; err == nil {
			canAccess = order.TailorID == application.ID
		}
	case "admin":
		canAccess = true
	}

	if !canAccess {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to access this order",
			},
		})
		return nil, false
	}

	return &order, true
}

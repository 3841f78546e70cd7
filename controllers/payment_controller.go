package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/services"
)

// GetPaymentBreakdown handles GET /api/v1/orders/:id/payment - shows the fee
// split for an order without charging anything
func GetPaymentBreakdown(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOrderForUser(c, user)
	if !ok {
		return
	}

	breakdown := services.CalculateFees(order.PriceQuoted)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":     order,
			"breakdown": breakdown,
		},
	})
}

// PayOrder handles POST /api/v1/orders/:id/pay - charges a pending order and
// moves it to 'paid'. On any failure the order keeps its current status and
// nothing is charged.
func PayOrder(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	order, ok := fetchOrderForUser(c, user)
	if !ok {
		return
	}

	// Only the customer pays
	if order.CustomerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only the order's customer can pay for it",
			},
		})
		return
	}

	if !models.ValidOrderTransition(order.Status, models.OrderStatusPaid) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_PAYABLE",
				"message": "Only pending orders can be paid",
			},
		})
		return
	}

	breakdown := services.CalculateFees(order.PriceQuoted)

	db := config.GetDB()
	if err := db.Model(order).Update("status", models.OrderStatusPaid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Payment could not be recorded",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":     order,
			"breakdown": breakdown,
		},
	})
}

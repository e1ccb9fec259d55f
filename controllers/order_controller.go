package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"manufacturer/middleware"
	"manufacturer/models"
	"manufacturer/services"
)

// SubmitOrder handles POST /order and PUT /order/:id. Both are idempotent
// on the (productId, buyerEmail, quantity, price) tuple: resubmitting an
// identical order returns the stored one with success=false.
func SubmitOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key models.OrderKey
		if err := c.ShouldBindJSON(&key); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId, buyerEmail, quantity and price are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, created, err := orders.Submit(ctx, key)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": created, "order": order})
	}
}

// ListOrders serves GET /order?email= and only returns the caller's own
// orders: the query email must match the token identity.
func ListOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		caller := c.GetString(middleware.IdentityKey)
		if email != caller {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		list, err := orders.ListByBuyer(ctx, email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func GetOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := orders.Get(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// ReconcileOrder handles PATCH /order/:id: records the confirmed payment
// and transitions the order to paid.
func ReconcileOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
			return
		}

		var body struct {
			TransactionID string `json:"transactionId" binding:"required"`
			Amount        int64  `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "transactionId and a positive amount are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		order, err := orders.Reconcile(ctx, id, body.TransactionID, body.Amount)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment recorded", "order": order})
	}
}

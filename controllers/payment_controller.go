package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturer/services"
)

// CreatePaymentIntent asks the gateway to authorize a charge for the
// given price and returns the client secret used to confirm it.
func CreatePaymentIntent(payments *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Price float64 `json:"price" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "a positive price is required"})
			return
		}

		clientSecret, err := payments.CreateIntent(c.Request.Context(), body.Price)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

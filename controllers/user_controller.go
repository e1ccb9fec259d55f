package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manufacturer/models"
	"manufacturer/services"
)

const storeTimeout = 5 * time.Second

// UpsertUser serves both GET and PUT /user/:email. The original client
// calls it on every sign-in: it stores the profile and hands back a fresh
// one-hour token.
func UpsertUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		var profile models.UserProfile
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&profile); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		user, token, err := users.Upsert(ctx, email, profile)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": user, "token": token})
	}
}

func ListUsers(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		list, err := users.List(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func CheckAdmin(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		admin, err := users.IsAdmin(ctx, c.Param("email"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"admin": admin})
	}
}

// PromoteUser elevates the target email to admin. The admin middleware
// has already authorized the caller.
func PromoteUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")

		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := users.Promote(ctx, email); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin", "email": email})
	}
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/flower-pricing-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// LoginInput defines the JSON input for POST /v1/login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Passcode string `json:"passcode" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Check passcode & issue token ---
	token, err := h.Gate.SignIn(input.Email, input.Passcode)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	// 3. --- Send Success Response ---
	email := auth.NormaliseEmail(input.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":               token,
		"email":               email,
		"canAccessRestricted": h.Gate.CanAccessRestricted(email),
	})
}

// Me is the handler for GET /v1/me
func (h *Handlers) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email":               c.GetString("userEmail"),
		"canAccessRestricted": c.GetBool("canAccessRestricted"),
	})
}

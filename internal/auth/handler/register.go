package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/auth"
	"quiz-service/internal/logger"
	"quiz-service/internal/user"
)

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

const (
	verificationSent    = "sent"
	verificationFailed  = "failed"
	verificationSkipped = "skipped"
)

// Signup creates the user, then dispatches the verification mail. The mail
// step is bounded by its own timeout and its outcome is reported next to the
// created user; it never rolls the signup back.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.service.Register(
		c.Request.Context(),
		req.Username,
		req.Email,
		req.Password,
	)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		case errors.Is(err, auth.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// store failure: never echo internals to the client
			logger.Error("signup failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	verification := verificationSkipped
	if u.Email != "" {
		verification = verificationSent

		// detached from the request context: signup succeeded already,
		// only the mail timeout bounds this
		ctx, cancel := context.WithTimeout(context.Background(), h.mailTimeout)
		defer cancel()

		if err := h.mailer.SendVerification(ctx, u.Email, u.Username); err != nil {
			verification = verificationFailed
			logger.Warn("verification mail not delivered", map[string]any{
				"username": u.Username,
				"error":    err.Error(),
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           u.ID.String(),
		"username":     u.Username,
		"verification": verification,
	})
}

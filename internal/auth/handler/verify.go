package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/logger"
	"quiz-service/internal/user"
)

// Verify marks the user's email as confirmed. Verified is a terminal state,
// so hitting the link twice is harmless.
func (h *Handler) Verify(c *gin.Context) {
	username := c.Param("username")

	u, err := h.service.MarkVerified(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logger.Error("verification failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": u.Username,
		"verified": u.Verified,
	})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/auth"
	"quiz-service/internal/logger"
	"quiz-service/internal/mail"
	"quiz-service/internal/session"
)

type Handler struct {
	service      *auth.Service
	sessionStore session.Store
	mailer       mail.Sender

	sessionTTL  time.Duration
	mailTimeout time.Duration
	cookieOpts  session.CookieOptions
}

func NewHandler(
	service *auth.Service,
	sessionStore session.Store,
	mailer mail.Sender,
	sessionTTL time.Duration,
	mailTimeout time.Duration,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		service:      service,
		sessionStore: sessionStore,
		mailer:       mailer,
		sessionTTL:   sessionTTL,
		mailTimeout:  mailTimeout,
		cookieOpts:   cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/signup", h.Signup)
	r.GET("/verify/:username", h.Verify)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// Logout deletes the session server-side (best-effort) and clears the cookie.
// It succeeds whether or not a valid session was presented.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessionStore.Delete(c.Request.Context(), cookie.Value); err != nil {
			logger.Warn("failed to delete session", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookieOpts)

	c.Status(http.StatusNoContent)
}

package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"quiz-service/internal/auth"
	authhandler "quiz-service/internal/auth/handler"
	"quiz-service/internal/config"
	"quiz-service/internal/mail"
	"quiz-service/internal/middleware"
	"quiz-service/internal/quiz"
	quizhandler "quiz-service/internal/quiz/handler"
	"quiz-service/internal/session"
	"quiz-service/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	userStore := user.NewPostgresStore(infra.DB)
	quizStore := quiz.NewPostgresStore(infra.DB)
	sessionStore := session.NewRedisStore(infra.Redis.Client)

	authService := auth.NewService(userStore, cfg.RequireVerified)

	var mailer mail.Sender = mail.NoopSender{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			BaseURL:  cfg.PublicBaseURL,
		})
	}

	cookieOpts := session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	authHandler := authhandler.NewHandler(
		authService,
		sessionStore,
		mailer,
		cfg.SessionTTL,
		cfg.MailTimeout,
		cookieOpts,
	)

	quizHandler := quizhandler.NewHandler(quizStore)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, userStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// quiz writes require an authenticated admin; reads stay public
	admin := router.Group("/")
	admin.Use(
		middleware.GinRequireAuth(authMiddleware),
		middleware.RequireRole(user.RoleAdmin),
	)

	quizHandler.RegisterRoutes(router, admin)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}, nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quiz-service/internal/logger"
	"quiz-service/internal/quiz"
)

type Handler struct {
	store quiz.Store
}

func NewHandler(store quiz.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes wires the quiz CRUD surface. Reads are public; writes go on
// the admin group the caller provides.
func (h *Handler) RegisterRoutes(r *gin.Engine, admin *gin.RouterGroup) {
	r.GET("/quizzes", h.List)
	r.GET("/quizzes/:id", h.Get)

	admin.POST("/quizzes", h.Create)
	admin.PATCH("/quizzes/:id", h.Update)
	admin.DELETE("/quizzes/:id", h.Delete)
}

type quizRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectOption string `json:"correct_option" binding:"required"`
}

type quizUpdateRequest struct {
	Question      *string `json:"question"`
	OptionA       *string `json:"option_a"`
	OptionB       *string `json:"option_b"`
	OptionC       *string `json:"option_c"`
	OptionD       *string `json:"option_d"`
	CorrectOption *string `json:"correct_option"`
}

type quizResponse struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

func toResponse(q *quiz.Quiz) quizResponse {
	return quizResponse{
		ID:            q.ID.String(),
		Question:      q.Question,
		OptionA:       q.OptionA,
		OptionB:       q.OptionB,
		OptionC:       q.OptionC,
		OptionD:       q.OptionD,
		CorrectOption: q.CorrectOption,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !quiz.ValidOption(req.CorrectOption) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct_option must be one of a, b, c, d"})
		return
	}

	q, err := h.store.Create(c.Request.Context(), &quiz.Quiz{
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		logger.Error("quiz create failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(q))
}

func (h *Handler) List(c *gin.Context) {
	quizzes, err := h.store.List(c.Request.Context())
	if err != nil {
		logger.Error("quiz list failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]quizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, toResponse(&quizzes[i]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	q, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		logger.Error("quiz get failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toResponse(q))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	var req quizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.CorrectOption != nil && !quiz.ValidOption(*req.CorrectOption) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct_option must be one of a, b, c, d"})
		return
	}

	q, err := h.store.Update(c.Request.Context(), id, quiz.Update{
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
	})
	if err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		logger.Error("quiz update failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toResponse(q))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, quiz.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		logger.Error("quiz delete failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

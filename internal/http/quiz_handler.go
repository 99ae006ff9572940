package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-llm/internal/catalog"
	"quiz-llm/internal/domain"
	"quiz-llm/internal/service"
	"quiz-llm/internal/store"
)

// QuizHandler mantiene dependencias para los endpoints del test.
type QuizHandler struct {
	logger   *zap.Logger
	sessions *service.SessionService
}

// NewQuizHandler crea una instancia de QuizHandler con dependencias necesarias.
func NewQuizHandler(logger *zap.Logger, sessions *service.SessionService) *QuizHandler {
	return &QuizHandler{
		logger:   logger,
		sessions: sessions,
	}
}

// sessionView es la proyección de una sesión que consume la UI.
type sessionView struct {
	ID        string                 `json:"id"`
	State     domain.SessionState    `json:"state"`
	Answers   map[int]int            `json:"answers"`
	Scores    domain.TraitScores     `json:"scores,omitempty"`
	Result    *domain.AnalysisResult `json:"result,omitempty"`
	LastError string                 `json:"last_error,omitempty"`
}

func newSessionView(session domain.Session) sessionView {
	return sessionView{
		ID:        session.ID,
		State:     session.State(),
		Answers:   session.Answers,
		Scores:    session.Scores,
		Result:    session.Result,
		LastError: session.LastError,
	}
}

// ListQuestions maneja GET /questions.
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions": catalog.All(),
		"scale": gin.H{
			"min": domain.AnswerMin,
			"max": domain.AnswerMax,
		},
	})
}

// CreateSession maneja POST /sessions.
func (h *QuizHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": newSessionView(session)})
}

// GetSession maneja GET /sessions/:id.
func (h *QuizHandler) GetSession(c *gin.Context) {
	session, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err, "get session failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": newSessionView(session)})
}

// SubmitAnswer maneja POST /sessions/:id/answers.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		QuestionID int  `json:"question_id" binding:"required"`
		Value      *int `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit answer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.sessions.SubmitAnswer(c.Request.Context(), c.Param("id"), req.QuestionID, *req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownQuestion), errors.Is(err, service.ErrAnswerOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.respondSessionError(c, err, "submit answer failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": newSessionView(session)})
}

// RequestAnalysis maneja POST /sessions/:id/analysis.
func (h *QuizHandler) RequestAnalysis(c *gin.Context) {
	session, err := h.sessions.RequestAnalysis(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnswersIncomplete):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "answer all questions first"})
		case errors.Is(err, service.ErrAnalysisFailed):
			// La sesión queda en estado reintentable; el detalle ya está logueado.
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "could not generate analysis",
				"session": newSessionView(session),
			})
		default:
			h.respondSessionError(c, err, "request analysis failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": newSessionView(session)})
}

// ResetSession maneja POST /sessions/:id/reset.
func (h *QuizHandler) ResetSession(c *gin.Context) {
	session, err := h.sessions.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err, "reset session failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": newSessionView(session)})
}

func (h *QuizHandler) respondSessionError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, store.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

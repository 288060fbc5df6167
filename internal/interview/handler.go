package interview

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-backend/internal/questionbank"
	"interview-backend/internal/session"
	"interview-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the interview service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews", h.startInterview)
	rg.POST("/interviews/:id/turns", h.submitTurn)
	rg.GET("/interviews/:id", h.getInterview)
	rg.DELETE("/interviews/:id", h.abandonInterview)
	rg.GET("/question-stats", h.questionStats)
	rg.POST("/questions/by-criteria", h.questionsByCriteria)
}

type startRequest struct {
	ResumeText    string `json:"resumeText"`
	QuestionCount int    `json:"questionCount"`
	UseAI         *bool  `json:"useAI"`
}

func (h *Handler) startInterview(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeText == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeText is required", []map[string]string{
			{"field": "resumeText", "issue": "required"},
		})
		return
	}

	preferAI := true
	if req.UseAI != nil {
		preferAI = *req.UseAI
	}

	snap, err := h.Svc.Start(c.Request.Context(), req.ResumeText, req.QuestionCount, preferAI)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start interview", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"sessionId":      snap.ID,
		"questions":      snap.Questions,
		"resumeAnalysis": snap.Analysis,
		"source":         snap.Source,
		"timerSeconds":   snap.TimerSeconds,
	})
}

type turnRequest struct {
	Answer string `json:"answer"`
	Skip   bool   `json:"skip"`
}

func (h *Handler) submitTurn(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Turn(c.Request.Context(), sessionID, req.Answer, req.Skip)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, session.ErrComplete):
			respond.Error(c, http.StatusConflict, "interview_complete", "interview already complete", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process turn", nil)
		}
		return
	}

	resp := gin.H{
		"evaluation":   result.Evaluation,
		"currentIndex": result.CurrentIndex,
		"isFollowUp":   result.IsFollowUp,
		"complete":     result.Complete,
	}
	if result.EvaluationSource != "" {
		resp["evaluationSource"] = result.EvaluationSource
	}
	if result.FollowUpQuestion != "" {
		resp["followUpQuestion"] = result.FollowUpQuestion
	} else {
		resp["followUpQuestion"] = nil
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) getInterview(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	snap, err := h.Svc.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch session", nil)
		return
	}
	respond.OK(c, snap)
}

func (h *Handler) abandonInterview(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		return
	}

	if err := h.Svc.Abandon(sessionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete session", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) questionStats(c *gin.Context) {
	bank := questionbank.All()

	categories := gin.H{}
	for category, byDifficulty := range bank {
		counts := gin.H{}
		total := 0
		for difficulty, templates := range byDifficulty {
			counts[difficulty] = len(templates)
			total += len(templates)
		}
		counts["total"] = total
		categories[category] = counts
	}

	respond.OK(c, gin.H{
		"totalQuestions": questionbank.Total(),
		"categories":     categories,
	})
}

type byCriteriaRequest struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

func (h *Handler) questionsByCriteria(c *gin.Context) {
	var req byCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if !questionbank.ValidCategory(req.Category) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", []map[string]string{
			{"field": "category", "issue": "unknown"},
		})
		return
	}
	if !questionbank.ValidDifficulty(req.Difficulty) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown difficulty", []map[string]string{
			{"field": "difficulty", "issue": "unknown"},
		})
		return
	}
	count := req.Count
	if count <= 0 {
		count = 5
	}

	qs := h.Svc.QuestionsByCriteria(questionbank.Category(req.Category), questionbank.Difficulty(req.Difficulty), count)
	respond.OK(c, gin.H{
		"questions": qs,
		"count":     len(qs),
	})
}

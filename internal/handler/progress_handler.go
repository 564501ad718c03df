package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mathpath/mathpath-backend/internal/middleware"
	"github.com/mathpath/mathpath-backend/internal/response"
	"github.com/mathpath/mathpath-backend/internal/service"
)

// ProgressHandler serves mastery state, history and the radar chart.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// History godoc
// GET /api/v1/progress/history
// Returns the student's finished runs, newest first.
func (h *ProgressHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	history, err := h.progressService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": history})
}

// Mastery godoc
// GET /api/v1/progress/mastery
// Returns per-skill XP, level and progress, with decay already applied.
func (h *ProgressHandler) Mastery(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.progressService.Mastery(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Chart godoc
// GET /api/v1/progress/chart
// Returns ready-to-draw radar chart geometry for the six skills.
func (h *ProgressHandler) Chart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	radar, err := h.progressService.Chart(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, radar)
}

// Overview godoc
// GET /api/v1/progress/overview
// Returns attempt count, average score, letter grade and recent runs.
func (h *ProgressHandler) Overview(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	overview, err := h.progressService.Overview(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, overview)
}

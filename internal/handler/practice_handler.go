package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mathpath/mathpath-backend/internal/adaptive"
	"github.com/mathpath/mathpath-backend/internal/middleware"
	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/response"
	"github.com/mathpath/mathpath-backend/internal/service"
	"github.com/mathpath/mathpath-backend/internal/validator"
)

// PracticeHandler handles the practice-run endpoints.
type PracticeHandler struct {
	practiceService *service.PracticeService
	questionService *service.QuestionService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(
	practiceService *service.PracticeService,
	questionService *service.QuestionService,
) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		questionService: questionService,
	}
}

// Start godoc
// POST /api/v1/practice/start
// Draws a question set for the requested mode and opens a session. Starting
// again while a run is open discards the old run.
func (h *PracticeHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartPracticeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.practiceService.Start(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, adaptive.ErrExhausted) {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Current godoc
// GET /api/v1/practice/current
// Returns the open session snapshot so a reloaded client can resume.
func (h *PracticeHandler) Current(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.practiceService.Current(claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Answer godoc
// POST /api/v1/practice/answer
func (h *PracticeHandler) Answer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fb, err := h.practiceService.Answer(claims.UserID, *req.OptionIndex)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, fb)
}

// Skip godoc
// POST /api/v1/practice/skip
func (h *PracticeHandler) Skip(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	fb, err := h.practiceService.Skip(claims.UserID)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, fb)
}

// Finish godoc
// POST /api/v1/practice/finish
// Computes and persists the run summary. The summary is returned even when
// persistence fails; persisted=false tells the client scores were not saved.
func (h *PracticeHandler) Finish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	result, err := h.practiceService.Finish(c.Request.Context(), claims.UserID)
	if err != nil {
		h.failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Abandon godoc
// DELETE /api/v1/practice/current
// Discards the open run without recording anything.
func (h *PracticeHandler) Abandon(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.practiceService.Abandon(claims.UserID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ListChapters godoc
// GET /api/v1/practice/chapters?grade=P4&semester=1
// Returns the chapter catalog for the mode picker.
func (h *PracticeHandler) ListChapters(c *gin.Context) {
	grade := c.Query("grade")
	if !model.ValidGrade(grade) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"grade": "unsupported grade code"})
		return
	}

	semester, err := strconv.Atoi(c.DefaultQuery("semester", "1"))
	if err != nil || (semester != 1 && semester != 2) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"semester": "must be 1 or 2"})
		return
	}

	chapters, err := h.questionService.ListChapters(c.Request.Context(), grade, semester)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"chapters": chapters})
}

// failSession maps session-flow errors onto their client-facing codes.
func (h *PracticeHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, adaptive.ErrNoActiveSession):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveSession)
	case errors.Is(err, adaptive.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrRunFinished)
	case errors.Is(err, adaptive.ErrSessionUnfinished):
		response.Fail(c, http.StatusConflict, response.ErrRunNotFinished)
	case errors.Is(err, adaptive.ErrAlreadyAnswered):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyAnswered)
	case errors.Is(err, adaptive.ErrOptionOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrAnswerOutOfRange)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

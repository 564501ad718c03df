package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/response"
	"github.com/mathpath/mathpath-backend/internal/service"
	"github.com/mathpath/mathpath-backend/internal/validator"
)

// QuestionHandler handles the teacher-facing question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/authoring/questions?grade=P4&semester=1&page=1&per_page=20
func (h *QuestionHandler) List(c *gin.Context) {
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

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	questions, pagination, err := h.questionService.List(c.Request.Context(), grade, semester, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, pagination)
}

// Get godoc
// GET /api/v1/authoring/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Create godoc
// POST /api/v1/authoring/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion()
	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		if errors.Is(err, model.ErrTooFewOptions) ||
			errors.Is(err, model.ErrAnswerOutOfRange) ||
			errors.Is(err, model.ErrInvalidGrade) ||
			errors.Is(err, model.ErrInvalidSemester) ||
			errors.Is(err, model.ErrInvalidLevel) ||
			errors.Is(err, model.ErrInvalidCompetency) {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrInvalidQuestion,
				map[string]string{"detail": err.Error()})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Update godoc
// PUT /api/v1/authoring/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := req.ToQuestion()
	question.ID = id
	if err := h.questionService.Update(c.Request.Context(), question); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		if errors.Is(err, model.ErrTooFewOptions) ||
			errors.Is(err, model.ErrAnswerOutOfRange) ||
			errors.Is(err, model.ErrInvalidGrade) ||
			errors.Is(err, model.ErrInvalidSemester) ||
			errors.Is(err, model.ErrInvalidLevel) ||
			errors.Is(err, model.ErrInvalidCompetency) {
			response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrInvalidQuestion,
				map[string]string{"detail": err.Error()})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/authoring/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

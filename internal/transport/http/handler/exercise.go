package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/transport/http/response"
)

type ExerciseHandler struct {
	exerciseService *app.ExerciseService
	logService      *app.LogService
}

// RecordExerciseRequest accepts form fields or JSON. DurationMinutes is kept raw so the
// service can report a precise validation error.
type RecordExerciseRequest struct {
	Description     string      `form:"description" json:"description"`
	DurationMinutes json.Number `form:"durationMinutes" json:"durationMinutes"`
	Date            string      `form:"date" json:"date"`
}

type LogRequest struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

func NewExerciseHandler(exerciseService *app.ExerciseService, logService *app.LogService) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		logService:      logService,
	}
}

func (h *ExerciseHandler) Record(c *gin.Context) {
	var req RecordExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, created, err := h.exerciseService.Record(c.Request.Context(), app.RecordInput{
		UserID:      c.Param("id"),
		Description: req.Description,
		Duration:    req.DurationMinutes.String(),
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(c, err, "an error occurred while recording the exercise")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, result)
}

func (h *ExerciseHandler) Logs(c *gin.Context) {
	var req LogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	result, err := h.logService.Query(c.Request.Context(), c.Param("id"), app.LogParams{
		From:  req.From,
		To:    req.To,
		Limit: req.Limit,
	})
	if err != nil {
		writeServiceError(c, err, "an error occurred while reading the exercise log")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

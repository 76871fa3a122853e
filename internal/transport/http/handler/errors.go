package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/transport/http/response"
)

// writeServiceError maps service errors to client or server faults. Server faults are
// logged and answered with fallback so store details never reach the caller.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidUsername), errors.Is(err, app.ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

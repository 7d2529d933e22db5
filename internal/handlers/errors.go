package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aigallery/internal/repository"
	"aigallery/internal/service"
	"aigallery/internal/view"
)

// respondError maps domain errors to status codes. Anything unknown is a 500
// and is logged.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrLoginRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrUnknownReaction),
		errors.Is(err, view.ErrNoImageSelected):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrImageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, view.ErrInvalidTransition):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal_server_error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

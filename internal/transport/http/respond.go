package http

import (
	"errors"
	"log"
	"net/http"

	"flagforge/internal/domain"

	"github.com/gin-gonic/gin"
)

// fail writes the JSON error shape for a domain error. Raw storage or
// internal detail never reaches the client: unknown errors are logged and
// reported as a generic server error.
func fail(c *gin.Context, err error) {
	status, message := errStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAlreadySolved):
		return http.StatusConflict, "You have already solved this challenge. No more attempts allowed."
	case errors.Is(err, domain.ErrInvalidSubmission),
		errors.Is(err, domain.ErrInvalidChallenge):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	}
	return http.StatusInternalServerError, "server error"
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/middleware"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/franciscosanchezn/store-rating-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// errorCodes overrides the default API error code of a sentinel
type errorCodes map[error]string

// respondError translates a service error into a status code and APIError.
// Unexpected errors are logged and reported with fallback only.
func respondError(c *gin.Context, err error, fallback string, overrides errorCodes) {
	status, code := http.StatusInternalServerError, models.ErrInternalServer

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.NewAPIError(
			codeFor(services.ErrValidation, models.ErrValidationFailed, overrides),
			validationErr.Message, validationErr.Fields))
		return
	case errors.Is(err, auth.ErrUnauthenticated):
		status, code = http.StatusUnauthorized, models.ErrUnauthorized
	case errors.Is(err, services.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, codeFor(services.ErrInvalidCredentials, models.ErrInvalidCredentials, overrides)
	case errors.Is(err, services.ErrForbidden):
		status, code = http.StatusForbidden, codeFor(services.ErrForbidden, models.ErrForbidden, overrides)
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, codeFor(services.ErrNotFound, models.ErrNotFound, overrides)
	case errors.Is(err, services.ErrConflict):
		status, code = http.StatusConflict, codeFor(services.ErrConflict, models.ErrConflict, overrides)
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error(fallback)
		c.JSON(status, models.NewAPIError(code, fallback))
		return
	}
	c.JSON(status, models.NewAPIError(code, services.Message(err, fallback)))
}

func codeFor(sentinel error, def string, overrides errorCodes) string {
	if code, ok := overrides[sentinel]; ok {
		return code
	}
	return def
}

// respondBadBody reports a request body that could not be decoded
func respondBadBody(c *gin.Context, err error) {
	log.WithError(err).WithField("path", c.FullPath()).Debug("Invalid request body")
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body."))
}

// currentIdentity returns the caller set by the auth middleware, or responds 401
func currentIdentity(c *gin.Context) (*auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "No token, authorization denied."))
		return nil, false
	}
	return identity, true
}

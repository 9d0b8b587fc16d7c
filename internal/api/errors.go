package api

import (
	"net/http"

	"trackfit/fitness-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// errorBody is the stable failure shape every endpoint returns.
type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// statusFor is the single place a kind becomes an HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for a classified error and aborts
// the request. Unclassified errors are logged with their cause and
// surface as a generic 500.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
	}
	c.AbortWithStatusJSON(statusFor(kind), gin.H{"error": errorBody{
		Kind:    kind,
		Message: apperr.MessageOf(err),
	}})
}

// respondValidation is the shortcut for gin binding failures.
func respondValidation(c *gin.Context, err error) {
	respondError(c, apperr.Validation("invalid request: %v", err))
}

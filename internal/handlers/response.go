package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
)

// ErrorResponse is the error envelope returned by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError translates an application error into its HTTP status and
// envelope. Unexpected errors are logged with their cause and surfaced as
// generic 500s without leaking internals.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeInternal {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unexpected error")
	}

	c.JSON(apperrors.HTTPStatus(err), ErrorResponse{
		Error:   string(code),
		Message: apperrors.MessageOf(err),
	})
}

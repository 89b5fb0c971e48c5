package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"safechain-api/internal/apperr"
	"safechain-api/internal/interface/api/rest/middleware"
)

func kindStatus(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps the error kind to a status and a stable wire shape.
// Internal causes are logged server-side and flattened for the client.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := kindStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(op+" error", zap.Error(err))
	}

	c.JSON(status, gin.H{
		"error": apperr.Message(err),
		"kind":  apperr.KindOf(err).String(),
	})
}

// principalUUID pulls the authenticated user id set by the auth
// middleware. A missing or mangled value means the request never went
// through the middleware.
func principalUUID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

package handlers

import (
	"errors"
	"net/http"

	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = errors.New("invalid request body")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Message string `json:"message" example:"module not found"`
	Error   string `json:"error" example:"NotFound"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// classify maps an error to status, taxonomy name and a client-safe message.
// Unknown errors never leak their text.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, "InvalidBody", err.Error()
	case errors.Is(err, service.ErrMissingField):
		return http.StatusBadRequest, "MissingField", err.Error()
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest, "DuplicateUsername", "Username already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, "InvalidCredentials", "Invalid credentials"
	case errors.Is(err, service.ErrInvalidTimeRange):
		return http.StatusBadRequest, "InvalidQuery", err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthenticated", "Access token required"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusForbidden, "Forbidden", "Invalid or expired token"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "NotFound", err.Error()
	default:
		return http.StatusInternalServerError, "StoreFailure", "Internal server error"
	}
}

// respondError writes the error body and aborts. Server faults are logged at
// error level with full detail, client mistakes at info.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code, name, msg := classify(err)
	fields := append([]interface{}{"err", err, "status", code}, kv...)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
	} else {
		h.log.Infow(logKey, fields...)
	}
	c.AbortWithStatusJSON(code, errorResponse{Message: msg, Error: name})
}

// bindJSON decodes the body into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.respondError(c, errInvalidBody, "bad_request_body", "path", c.FullPath(), "cause", err)
		return false
	}
	return true
}

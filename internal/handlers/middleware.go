package handlers

import (
	"strings"

	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxUsername = "username"

// authMiddleware gates protected routes. A missing header or empty token is
// 401; anything else that fails verification is 403.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		h.respondError(c, service.ErrUnauthenticated, "auth_missing_header")
		return
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if scheme != "Bearer" {
		h.respondError(c, service.ErrInvalidToken, "auth_bad_scheme", "scheme", scheme)
		return
	}
	if token == "" {
		h.respondError(c, service.ErrUnauthenticated, "auth_empty_token")
		return
	}

	username, err := h.services.Authorization.ParseToken(token)
	if err != nil {
		h.respondError(c, service.ErrInvalidToken, "auth_invalid_token", "cause", err)
		return
	}

	c.Set(ctxUsername, username)
	c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), username))
	c.Next()
}

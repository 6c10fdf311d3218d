package handlers

import (
	"net/http"

	"tripplanbuddy/internal/domain"
	"tripplanbuddy/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload for every handler.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	status := domain.StatusOf(err)
	switch {
	case domain.IsValidation(err):
		respondError(c, status, "validation_error", err.Error())
	case domain.IsConfiguration(err):
		respondError(c, status, "configuration_error", err.Error())
	case domain.IsUpstream(err):
		respondError(c, status, "upstream_error", err.Error())
	case domain.IsTransport(err):
		respondError(c, status, "transport_error", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "Server error while generating itinerary.")
	}
}

// MethodNotAllowed answers verbs a route does not accept.
func MethodNotAllowed(c *gin.Context) {
	if allow := allowedMethods(c.Request.URL.Path); allow != "" {
		c.Header("Allow", allow)
	}
	respondError(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "not_found", "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
}

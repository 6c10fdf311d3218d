package handlers

import (
	"errors"
	"io"

	"tripplanbuddy/internal/domain"

	"github.com/gin-gonic/gin"
)

// BindJSONOrEmpty decodes the body into dst. A missing or empty body leaves
// dst at its zero value; malformed JSON is a validation error.
func BindJSONOrEmpty[T any](c *gin.Context, dst *T) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.ValidationError{Msg: "Invalid request body.", Err: err}
	}
	return nil
}

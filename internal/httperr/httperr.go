package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-labs/advisory-scheduler/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError maps a business error to its transport status. Unknown
// errors become opaque 500s so internals never leak to callers.
func FromError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	message := ""
	if ae, ok := err.(*apperr.Error); ok {
		message = ae.Message
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		Write(c, http.StatusNotFound, code, message)
	case apperr.KindAuthorization:
		Write(c, http.StatusForbidden, code, message)
	case apperr.KindValidation, apperr.KindInvalidState, apperr.KindConflict:
		Write(c, http.StatusBadRequest, code, message)
	case apperr.KindInvalidToken, apperr.KindRevokedToken, apperr.KindExpiredToken:
		Write(c, http.StatusUnauthorized, code, message)
	default:
		Write(c, http.StatusInternalServerError, "internal_error", "")
	}
}

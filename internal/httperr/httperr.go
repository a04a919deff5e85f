package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes err using the status that matches its kind.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status := http.StatusBadRequest
	message := "Invalid request."
	switch be.Kind {
	case KindInvalidTransition:
		status = http.StatusUnprocessableEntity
		message = "Status change not allowed."
	case KindConflict:
		status = http.StatusConflict
		message = "Booking was changed by someone else. Reload and retry."
	case KindNotFound:
		status = http.StatusNotFound
		message = "Not found."
	case KindRemote:
		status = http.StatusBadGateway
		message = "Operation failed. Please retry."
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Message: message,
		Field:   be.Field,
	})
}

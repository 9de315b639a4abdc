package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/pkg/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
			Field:   apperr.FieldOf(err),
		},
	})
}

// RespondAppError maps the error kind onto an HTTP status: validation
// and checksum failures are unprocessable, lookups that missed are 404,
// uniqueness clashes are 409, anything else is a 500 with the message
// withheld.
func RespondAppError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindValidation, apperr.KindChecksum:
		RespondError(c, http.StatusUnprocessableEntity, kind.String(), err)
	case apperr.KindNotFound:
		RespondError(c, http.StatusNotFound, kind.String(), err)
	case apperr.KindConflict:
		RespondError(c, http.StatusConflict, kind.String(), err)
	default:
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: "internal error", Code: "internal"},
		})
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

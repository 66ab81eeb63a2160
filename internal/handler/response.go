package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtrack/consult-api/internal/model"
	apperrors "github.com/medtrack/consult-api/pkg/errors"
)

// Error payloads use a single "detail" key: a string for simple failures,
// a list of {field, reason} objects for validation failures.

func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Code == apperrors.ErrValidation {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": appErr.Fields})
			return
		}
		c.JSON(appErr.StatusCode(), gin.H{"detail": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// RespondBindError maps JSON decode failures to 422 with as much field
// context as the decoder provides.
func RespondBindError(c *gin.Context, err error) {
	var dateErr *model.DateParseError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &dateErr):
		// first_session_date is the only date-typed field on the wire.
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []apperrors.FieldError{
			{Field: "first_session_date", Reason: dateErr.Error()},
		}})
	case errors.As(err, &typeErr) && typeErr.Field != "":
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []apperrors.FieldError{
			{Field: typeErr.Field, Reason: fmt.Sprintf("must be of type %s", typeErr.Type)},
		}})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
	}
}

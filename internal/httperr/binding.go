package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Binding turns a gin binding failure into a field-level error response.
// The first failed validation wins; anything that is not a validator error
// (malformed JSON and the like) falls back to a plain invalid_request.
func Binding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		WriteField(
			c,
			http.StatusBadRequest,
			"validation_failed",
			strings.ToLower(fe.Field()),
			"Field failed validation: "+fe.Tag(),
		)
		return
	}

	BadRequest(c, "invalid_request", "Request body is invalid.")
}

package response

import (
	"errors"
	"net/http"

	"github.com/gestaorh/presenca-backend-go/internal/domain/presence"
	"github.com/gestaorh/presenca-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Presence domain errors
	switch {
	case errors.Is(err, presence.ErrUnreadableWorkbook):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, presence.ErrNothingToImport):
		NothingToImport(w, "No rows with a recognizable name column were found")
	case errors.Is(err, presence.ErrConfirmationMismatch):
		BadRequest(w, "Confirmation phrase does not match", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

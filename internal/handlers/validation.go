package handlers

import (
	"errors"
	"fmt"

	"filedrop/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

// fieldErrors flattens validator output into one entry per violated field so
// the client sees every problem at once, not just the first.
func fieldErrors(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "", Message: "Invalid request body"}}
	}

	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, apperrors.FieldError{
			Field:   e.Field(),
			Message: fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()),
		})
	}
	return out
}

package errors

import (
	"github.com/go-playground/validator/v10"
)

// Fields converts go-playground validator failures into RFC 7807 field errors
func Fields(err error) []ValidationError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: fe.Error(),
			Code:    fe.Tag(),
		})
	}
	return out
}

// file: internals/features/school/quizzes/controller/validation.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
)

// validationMessages flattens validator errors into the field → messages
// shape helper.JsonValidationError emits.
func validationMessages(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], "failed rule: "+fe.Tag())
		}
	}
	return out
}

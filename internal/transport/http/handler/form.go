package handler

import (
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
)

// formErrors turns gin's binding failure into the field-level messages the
// re-rendered form shows.
func formErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required.", fe.Field()))
		case "email":
			msgs = append(msgs, "Email must be a valid email address.")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid.", fe.Field()))
		}
	}
	return msgs
}

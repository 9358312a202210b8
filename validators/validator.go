package validators

import (
	"errors"
	"fmt"
	"html"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// Validator adapts validator/v10 to echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Messages flattens a validation error into one message per field.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return msgs
}

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips all markup from user supplied text. The remaining text is
// returned unescaped, since it is stored and served as JSON rather than HTML.
func Sanitize(input string) string {
	return html.UnescapeString(sanitizer.Sanitize(input))
}

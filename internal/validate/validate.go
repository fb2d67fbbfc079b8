// Package validate gates form submissions before they reach the network:
// non-empty names, credential shape, minimum password length.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=32"`
}

type Registration struct {
	Username string `validate:"required,min=2,max=32"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=32"`
}

type ServerForm struct {
	Name string `validate:"required,max=64"`
}

type ChannelForm struct {
	Name     string `validate:"required,max=32"`
	Category string `validate:"max=32"`
}

// FieldErrors maps a form field name to the validation tag it failed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, tag := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(field), tag))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// Struct validates a form and returns FieldErrors describing every failed
// field, or nil when the form is acceptable.
func Struct(form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		fieldErrors := make(FieldErrors, len(validateErrs))
		for _, e := range validateErrs {
			fieldErrors[e.Field()] = e.Tag()
		}
		return fieldErrors
	}
	return err
}

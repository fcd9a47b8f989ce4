package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every struct validation failure.
var ErrInvalid = errors.New("invalid input")

var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"accountType": validateAccountType,
	"lineType":    validateLineType,
}

func init() {
	mValidate = validator.New()
	for tag, fn := range fieldValidators {
		if err := mValidate.RegisterValidation(tag, fn); err != nil {
			panic("failed to register validation " + tag + ": " + err.Error())
		}
	}
}

// Validate checks the `validate` struct tags of s and flattens the failures into one error.
func Validate(s any) error {
	err := mValidate.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	msgs := make([]string, len(vErrs))
	for i, fe := range vErrs {
		msgs[i] = fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func validateAccountType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(AccountType); ok {
		return value.Valid()
	}
	return false
}

func validateLineType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(LineType); ok {
		return value.Valid()
	}
	return false
}

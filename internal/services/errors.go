package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrLoginNameTaken    = errors.New("login_name already exists")
	ErrUserNotFound      = errors.New("User not found")
	ErrPhotoNotFound     = errors.New("Photo not found")
	ErrCannotFindUser    = errors.New("Cannot find user")
	ErrIncorrectPassword = errors.New("Incorrect password")
)

// ValidationError reports a missing or malformed field in a request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and reports the first failure
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Message: "Missing " + fe.Field()}
	case "max":
		return &ValidationError{Field: fe.Field(), Message: fe.Field() + " must be at most " + fe.Param() + " characters"}
	default:
		return &ValidationError{Field: fe.Field(), Message: "Invalid " + fe.Field()}
	}
}

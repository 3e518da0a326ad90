package auth

import (
	stderrors "errors"
	"fmt"

	"chirptalks/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ValidateRegister checks registration input before any expensive
// cryptographic operation.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrInvalidInput, registerHint(err))
	}
	return nil
}

// ValidateLogin checks login input. Credential verification failures are
// reported separately and indistinguishably by the auth service.
func ValidateLogin(req LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: all fields are required and email must be valid", errors.ErrInvalidInput)
	}
	return nil
}

// registerHint converts the first failed rule into the short, human readable
// message the REST surface exposes.
func registerHint(err error) string {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "all fields are required"
	}
	switch fieldErrors[0].Field() {
	case "Username":
		return "username must be between 3 and 20 characters"
	case "Email":
		return "invalid email format"
	case "Password":
		return "password must be at least 6 characters"
	default:
		return "all fields are required"
	}
}

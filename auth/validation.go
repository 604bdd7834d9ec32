package auth

import (
	"strings"

	"github.com/jrsteele09/appeals-client/internal/errors"
)

// Validator checks request input before it is sent, so obviously bad input
// fails locally with ErrInvalidRequest instead of a round trip.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCredentials validates login credentials
func (v *Validator) ValidateCredentials(email, password string) error {
	if err := v.validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "password is required")
	}
	return nil
}

func (v *Validator) ValidateRegistration(req RegisterRequest) error {
	if err := v.ValidateCredentials(req.Email, req.Password); err != nil {
		return err
	}
	if strings.ContainsAny(req.Username, " \t\n") {
		return errors.Wrapf(errors.ErrInvalidRequest, "username cannot contain whitespace")
	}
	return nil
}

func (v *Validator) ValidatePasswordChange(currentPassword, newPassword string) error {
	if currentPassword == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "current password is required")
	}
	if newPassword == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "new password is required")
	}
	if currentPassword == newPassword {
		return errors.Wrapf(errors.ErrInvalidRequest, "new password must differ from the current one")
	}
	return nil
}

// ValidateAccessToken checks the token has three non-empty dot separated segments
func (v *Validator) ValidateAccessToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.Wrapf(errors.ErrInvalidToken, "access token is required")
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return errors.Wrapf(errors.ErrInvalidToken, "token must have three segments")
	}
	for i, part := range parts {
		if len(part) == 0 {
			return errors.Wrapf(errors.ErrInvalidToken, "segment %d is empty", i+1)
		}
	}
	return nil
}

func (v *Validator) validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "email is required")
	}
	// Basic email format validation
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return errors.Wrapf(errors.ErrInvalidRequest, "invalid email format")
	}
	return nil
}

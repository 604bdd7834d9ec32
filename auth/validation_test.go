package auth_test

import (
	"testing"

	"github.com/jrsteele09/appeals-client/auth"
	appealerrors "github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateCredentials(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid credentials", func(t *testing.T) {
		require.NoError(t, v.ValidateCredentials("user@example.com", "password123"))
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateCredentials("", "password123")
		require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
		require.Contains(t, err.Error(), "email is required")
	})

	t.Run("invalid email format", func(t *testing.T) {
		err := v.ValidateCredentials("userexample.com", "password123")
		require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
		require.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("empty password", func(t *testing.T) {
		err := v.ValidateCredentials("user@example.com", "")
		require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
		require.Contains(t, err.Error(), "password is required")
	})
}

func TestValidator_ValidateRegistration(t *testing.T) {
	v := auth.NewValidator()
	require.NoError(t, v.ValidateRegistration(auth.RegisterRequest{Username: "jane", Email: "jane@example.com", Password: "pw"}))

	err := v.ValidateRegistration(auth.RegisterRequest{Username: "jane doe", Email: "jane@example.com", Password: "pw"})
	require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
}

func TestValidator_ValidatePasswordChange(t *testing.T) {
	v := auth.NewValidator()
	require.NoError(t, v.ValidatePasswordChange("old", "new"))
	require.ErrorIs(t, v.ValidatePasswordChange("", "new"), appealerrors.ErrInvalidRequest)
	require.ErrorIs(t, v.ValidatePasswordChange("old", ""), appealerrors.ErrInvalidRequest)
	require.ErrorIs(t, v.ValidatePasswordChange("same", "same"), appealerrors.ErrInvalidRequest)
}

func TestValidator_ValidateAccessToken(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid token format", func(t *testing.T) {
		require.NoError(t, v.ValidateAccessToken("h2.e2.s2"))
	})

	t.Run("empty token", func(t *testing.T) {
		require.ErrorIs(t, v.ValidateAccessToken("  "), appealerrors.ErrInvalidToken)
	})

	t.Run("wrong segment count", func(t *testing.T) {
		require.ErrorIs(t, v.ValidateAccessToken("a.b"), appealerrors.ErrInvalidToken)
	})

	t.Run("empty segment", func(t *testing.T) {
		err := v.ValidateAccessToken("a..c")
		require.ErrorIs(t, err, appealerrors.ErrInvalidToken)
		require.Contains(t, err.Error(), "segment 2 is empty")
	})
}

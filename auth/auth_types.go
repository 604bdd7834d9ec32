package auth

import (
	"encoding/json"

	"github.com/jrsteele09/appeals-client/internal/utils"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the body returned by login and refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"-"`
	FullName string `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
}

type RegisterResponse struct {
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	User    *Profile `json:"user,omitempty" yaml:"user,omitempty"`
}

// Profile is the account returned by /auth/me
type Profile struct {
	ID          string         `json:"id" yaml:"id"`
	Username    string         `json:"username,omitempty" yaml:"username,omitempty"`
	Email       string         `json:"email" yaml:"email"`
	FullName    string         `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	Role        string         `json:"role,omitempty" yaml:"role,omitempty"`
	Permissions PermissionList `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	LastLoginAt string         `json:"lastLoginAt,omitempty" yaml:"lastLoginAt,omitempty"`
}

// Active reports the account state. Servers that omit isActive only return active accounts.
func (p *Profile) Active() bool {
	return utils.ValueOr(p.IsActive, true)
}

// PermissionList accepts either plain names or {"name": ...} objects
type PermissionList []string

func (p *PermissionList) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = utils.ToStringSlice(raw)
	return nil
}

type MessageResponse struct {
	Message string `json:"message" yaml:"message"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

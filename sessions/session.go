package sessions

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/internal/utils"
	"golang.org/x/oauth2"
)

// Persisted state keys. They match the names the web dashboard keeps in browser storage
// so a shared backend can be read by either client.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "userId"
	KeyUserName     = "userName"
	KeyUserRole     = "userRole"
	KeyPermissions  = "permissions"
)

// AllKeys lists every field cleared when a session ends
var AllKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUserID, KeyUserName, KeyUserRole, KeyPermissions}

// Store is the key-value persistence behind a session.
// Get reports ok=false for a missing key rather than returning an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// User is the identity derived from the access token at login or refresh
type User struct {
	ID          string
	Name        string
	Role        string
	Permissions []string
}

// State owns the credential and identity fields of one client session.
type State struct {
	store Store
}

func NewState(store Store) *State {
	return &State{store: store}
}

func (s *State) Store() Store {
	return s.store
}

func (s *State) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

func (s *State) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRefreshToken)
}

// Token returns the stored credential pair, or nil when no access token is held
func (s *State) Token(ctx context.Context) (*oauth2.Token, error) {
	access, err := s.AccessToken(ctx)
	if err != nil || access == "" {
		return nil, err
	}
	refresh, err := s.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}

// SaveTokens persists a new credential pair. An empty refresh token leaves the stored one in place.
func (s *State) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return errors.Wrapf(errors.ErrInvalidToken, "save tokens")
	}
	if err := s.store.Set(ctx, KeyAccessToken, accessToken); err != nil {
		return errors.Wrapf(err, "save access token")
	}
	if refreshToken == "" {
		return nil
	}
	if err := s.store.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
		return errors.Wrapf(err, "save refresh token")
	}
	return nil
}

// SaveUser persists the identity fields. Role and permissions are only written when present,
// so a refresh that omits them keeps what login stored.
func (s *State) SaveUser(ctx context.Context, user User) error {
	fields := [][2]string{{KeyUserID, user.ID}, {KeyUserName, user.Name}}
	if user.Role != "" {
		fields = append(fields, [2]string{KeyUserRole, user.Role})
	}
	if user.Permissions != nil {
		fields = append(fields, [2]string{KeyPermissions, strings.Join(user.Permissions, ",")})
	}
	for _, f := range fields {
		if err := s.store.Set(ctx, f[0], f[1]); err != nil {
			return errors.Wrapf(err, "save %s", f[0])
		}
	}
	return nil
}

// User returns the stored identity, or ErrSessionNotFound when nobody is logged in
func (s *State) User(ctx context.Context) (*User, error) {
	id, err := s.get(ctx, KeyUserID)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.ErrSessionNotFound
	}
	name, err := s.get(ctx, KeyUserName)
	if err != nil {
		return nil, err
	}
	role, err := s.get(ctx, KeyUserRole)
	if err != nil {
		return nil, err
	}
	permissions, err := s.Permissions(ctx)
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Name: name, Role: role, Permissions: permissions}, nil
}

func (s *State) Permissions(ctx context.Context) ([]string, error) {
	joined, err := s.get(ctx, KeyPermissions)
	if err != nil {
		return nil, err
	}
	return utils.SplitList(joined), nil
}

func (s *State) Role(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserRole)
}

// Clear removes every session field. Each key is attempted even if an earlier one fails,
// so no partial session survives a single backend error.
func (s *State) Clear(ctx context.Context) error {
	var result *multierror.Error
	for _, key := range AllKeys {
		if err := s.store.Delete(ctx, key); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "clear %s", key))
		}
	}
	return result.ErrorOrNil()
}

func (s *State) get(ctx context.Context, key string) (string, error) {
	value, _, err := s.store.Get(ctx, key)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", key)
	}
	return value, nil
}

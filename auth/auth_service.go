package auth

import (
	"context"
	"slices"

	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/jrsteele09/appeals-client/token"
	"github.com/rs/zerolog/log"
)

// AdminRole is the role name that grants administrative access
const AdminRole = "admin"

// Service manages the login lifecycle of one client session.
//
// Login, register, refresh and logout go through the public client because they must
// never trigger the session transport's own renewal. Profile calls go through the
// session client so an expired access token is renewed transparently.
type Service struct {
	public    *api.Client
	session   *api.Client
	state     *sessions.State
	validator *Validator
}

func NewService(public, session *api.Client, state *sessions.State) *Service {
	return &Service{public: public, session: session, state: state, validator: NewValidator()}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}
	var resp RegisterResponse
	if err := s.public.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, errors.Wrapf(err, "register %s", req.Email)
	}
	return &resp, nil
}

// Login exchanges credentials for a token pair and stores the pair and the identity it carries.
// A token whose payload cannot be decoded leaves no session behind.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := s.validator.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	var pair TokenPair
	if err := s.public.Post(ctx, "/auth/login", Credentials{Email: email, Password: password}, &pair); err != nil {
		return nil, errors.Wrapf(err, "login")
	}
	if err := s.validator.ValidateAccessToken(pair.AccessToken); err != nil {
		return nil, errors.Wrapf(err, "login response")
	}
	// The identity fields of a previous login must not survive into this one
	if err := s.state.Clear(ctx); err != nil {
		return nil, errors.Wrapf(err, "clear previous session")
	}
	if err := s.establish(ctx, &pair, true); err != nil {
		return nil, err
	}
	log.Info().Str("email", email).Msg("logged in")
	return &pair, nil
}

// Refresh renews the session explicitly. Any failure logs the user out.
func (s *Service) Refresh(ctx context.Context) (*TokenPair, error) {
	pair, err := s.refresh(ctx)
	if err != nil {
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			log.Err(logoutErr).Msg("logout after failed refresh")
		}
		return nil, err
	}
	return pair, nil
}

func (s *Service) refresh(ctx context.Context) (*TokenPair, error) {
	refreshToken, err := s.state.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		return nil, errors.ErrNoRefreshToken
	}

	var pair TokenPair
	if err := s.public.Post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &pair); err != nil {
		return nil, errors.Wrapf(err, "refresh")
	}
	if pair.AccessToken == "" {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "refresh response missing accessToken")
	}
	// permissions are only issued at login
	if err := s.establish(ctx, &pair, false); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout tells the server the session is over and always clears local state,
// whatever the server answers.
func (s *Service) Logout(ctx context.Context) error {
	accessToken, err := s.state.AccessToken(ctx)
	if err != nil {
		log.Err(err).Msg("read access token for logout")
	}

	client := s.public
	if accessToken != "" {
		client = client.WithHeader("Authorization", "Bearer "+accessToken)
	}
	if err := client.Post(ctx, "/auth/logout", struct{}{}, nil); err != nil {
		log.Warn().Err(err).Msg("logout request failed, clearing local session anyway")
	}
	return s.state.Clear(ctx)
}

func (s *Service) CurrentUser(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.session.Get(ctx, "/auth/me", nil, &profile); err != nil {
		return nil, errors.Wrapf(err, "get current user")
	}
	return &profile, nil
}

func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*MessageResponse, error) {
	if err := s.validator.ValidatePasswordChange(currentPassword, newPassword); err != nil {
		return nil, err
	}
	req := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	var resp MessageResponse
	if err := s.session.Post(ctx, "/auth/change-password", req, &resp); err != nil {
		return nil, errors.Wrapf(err, "change password")
	}
	return &resp, nil
}

// IsAuthenticated reports whether an unexpired access token is stored.
// A token without an exp claim is treated as unauthenticated.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	accessToken, err := s.state.AccessToken(ctx)
	if err != nil || accessToken == "" {
		return false
	}
	claims, err := token.Decode(accessToken)
	if err != nil {
		return false
	}
	return !claims.ExpiresAt.IsZero() && !claims.Expired()
}

func (s *Service) AccessToken(ctx context.Context) (string, error) {
	return s.state.AccessToken(ctx)
}

// User returns the identity stored at login
func (s *Service) User(ctx context.Context) (*sessions.User, error) {
	return s.state.User(ctx)
}

func (s *Service) Permissions(ctx context.Context) ([]string, error) {
	return s.state.Permissions(ctx)
}

func (s *Service) HasPermission(ctx context.Context, permission string) bool {
	permissions, err := s.state.Permissions(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(permissions, permission)
}

func (s *Service) Role(ctx context.Context) (string, error) {
	return s.state.Role(ctx)
}

func (s *Service) HasRole(ctx context.Context, role string) bool {
	current, err := s.state.Role(ctx)
	return err == nil && current != "" && current == role
}

func (s *Service) IsAdmin(ctx context.Context) bool {
	return s.HasRole(ctx, AdminRole)
}

// establish persists a token pair and the identity decoded from its access token
func (s *Service) establish(ctx context.Context, pair *TokenPair, withPermissions bool) error {
	if err := s.state.SaveTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return errors.Wrapf(err, "save session")
	}

	claims, err := token.Decode(pair.AccessToken)
	if err != nil {
		if clearErr := s.state.Clear(ctx); clearErr != nil {
			log.Err(clearErr).Msg("clear session after undecodable token")
		}
		return err
	}

	user := sessions.User{ID: claims.Subject, Name: claims.DisplayName(), Role: claims.Role}
	if withPermissions {
		user.Permissions = claims.Permissions
	}
	if err := s.state.SaveUser(ctx, user); err != nil {
		return errors.Wrapf(err, "save user")
	}
	return nil
}

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/appeals-client/api"
	"github.com/jrsteele09/appeals-client/auth"
	"github.com/jrsteele09/appeals-client/internal/apitest"
	appealerrors "github.com/jrsteele09/appeals-client/internal/errors"
	"github.com/jrsteele09/appeals-client/internal/utils"
	"github.com/jrsteele09/appeals-client/sessions"
	"github.com/jrsteele09/appeals-client/sessions/storefake"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "a@b.com"
	testPassword = "x"
	testUserID   = "user-1"
)

// testFixture holds all test dependencies
type testFixture struct {
	server  *apitest.Server
	store   *storefake.FakeStore
	state   *sessions.State
	service *auth.Service
}

func newFixture(t *testing.T) *testFixture {
	f := &testFixture{server: apitest.New(t), store: storefake.NewFakeStore()}
	f.state = sessions.NewState(f.store)
	public, session := f.server.Clients(t, f.state)
	f.service = auth.NewService(public, session, f.state)
	return f
}

func (f *testFixture) issue(t *testing.T, claims jwtlib.MapClaims) string {
	accessToken := apitest.IssueToken(t, claims)
	f.server.AcceptToken(accessToken)
	return accessToken
}

func loginHandler(t *testing.T, pair auth.TokenPair) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds auth.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != testEmail || creds.Password != testPassword {
			apitest.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		apitest.WriteJSON(w, http.StatusOK, pair)
	}
}

func TestLogin_PersistsTokensAndIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accessToken := f.issue(t, jwtlib.MapClaims{
		"sub":         testUserID,
		"email":       testEmail,
		"role":        "admin",
		"permissions": []any{"cases:read", map[string]any{"name": "analytics:read"}},
	})
	f.server.Handle("POST /auth/login", loginHandler(t, auth.TokenPair{AccessToken: accessToken, RefreshToken: "r1"}))

	pair, err := f.service.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, "r1", pair.RefreshToken)

	values := f.store.Values()
	require.Equal(t, accessToken, values[sessions.KeyAccessToken])
	require.Equal(t, "r1", values[sessions.KeyRefreshToken])
	require.Equal(t, testUserID, values[sessions.KeyUserID])
	require.Equal(t, testEmail, values[sessions.KeyUserName], "email stands in for a missing username")
	require.Equal(t, "cases:read,analytics:read", values[sessions.KeyPermissions])

	user, err := f.service.User(ctx)
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
	require.Equal(t, testEmail, user.Name)

	require.True(t, f.service.IsAuthenticated(ctx))
	require.True(t, f.service.IsAdmin(ctx))
	require.True(t, f.service.HasPermission(ctx, "analytics:read"))
	require.False(t, f.service.HasPermission(ctx, "ocr:write"))

	// login never goes through the session transport
	login, ok := f.server.Last(http.MethodPost, "/auth/login")
	require.True(t, ok)
	require.Empty(t, login.Authorization)
}

func TestLogin_ReplacesPreviousIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adminToken := f.issue(t, jwtlib.MapClaims{
		"sub":         "admin-1",
		"role":        auth.AdminRole,
		"permissions": []any{"cases:delete"},
	})
	userToken := f.issue(t, jwtlib.MapClaims{"sub": "user-2", "email": testEmail})

	pairs := []auth.TokenPair{
		{AccessToken: adminToken, RefreshToken: "r-admin"},
		{AccessToken: userToken, RefreshToken: "r-user"},
	}
	var logins atomic.Int32
	f.server.Handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, http.StatusOK, pairs[logins.Add(1)-1])
	})

	_, err := f.service.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)
	require.True(t, f.service.IsAdmin(ctx))

	_, err = f.service.Login(ctx, testEmail, testPassword)
	require.NoError(t, err)

	user, err := f.service.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-2", user.ID)
	require.Empty(t, user.Role)
	require.Empty(t, user.Permissions)
	require.False(t, f.service.IsAdmin(ctx))
	require.False(t, f.service.HasPermission(ctx, "cases:delete"))

	values := f.store.Values()
	require.Equal(t, "r-user", values[sessions.KeyRefreshToken])
	require.NotContains(t, values, sessions.KeyUserRole)
	require.NotContains(t, values, sessions.KeyPermissions)
}

func TestLogin_UndecodableTokenLeavesNoSession(t *testing.T) {
	f := newFixture(t)
	f.server.Handle("POST /auth/login", loginHandler(t, auth.TokenPair{AccessToken: "h.e.s", RefreshToken: "r1"}))

	_, err := f.service.Login(context.Background(), testEmail, testPassword)
	require.ErrorIs(t, err, appealerrors.ErrInvalidToken)
	require.Zero(t, f.store.Len())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	f := newFixture(t)
	f.server.Handle("POST /auth/login", loginHandler(t, auth.TokenPair{AccessToken: "unused"}))

	_, err := f.service.Login(context.Background(), testEmail, "wrong")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.Zero(t, f.store.Len())
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	f.server.Handle("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		apitest.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "User registered",
			"user":    map[string]any{"id": "user-9", "email": req.Email, "username": req.Username},
		})
	})

	resp, err := f.service.Register(context.Background(), auth.RegisterRequest{Username: "jane", Email: "jane@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "User registered", resp.Message)
	require.Equal(t, "user-9", resp.User.ID)
	require.Equal(t, "jane", resp.User.Username)
	require.Zero(t, f.store.Len(), "registering does not log in")
}

func TestRefresh_UpdatesTokensAndKeepsPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.Seed(map[string]string{
		sessions.KeyAccessToken:  "old",
		sessions.KeyRefreshToken: "r1",
		sessions.KeyPermissions:  "cases:read",
	})
	accessToken := f.issue(t, jwtlib.MapClaims{"sub": testUserID, "username": "jane", "role": "clerk", "permissions": []any{"ignored"}})
	f.server.Handle("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "r1", req["refreshToken"])
		apitest.WriteJSON(w, http.StatusOK, auth.TokenPair{AccessToken: accessToken, RefreshToken: "r2"})
	})

	_, err := f.service.Refresh(ctx)
	require.NoError(t, err)

	values := f.store.Values()
	require.Equal(t, accessToken, values[sessions.KeyAccessToken])
	require.Equal(t, "r2", values[sessions.KeyRefreshToken])
	require.Equal(t, "jane", values[sessions.KeyUserName])
	require.Equal(t, "clerk", values[sessions.KeyUserRole])
	require.Equal(t, "cases:read", values[sessions.KeyPermissions])
}

func TestRefresh_FailureLogsOut(t *testing.T) {
	f := newFixture(t)
	f.store.Seed(map[string]string{sessions.KeyAccessToken: "old", sessions.KeyUserID: testUserID})
	f.server.Handle("POST /auth/logout", apitest.JSON(map[string]string{"message": "ok"}))

	_, err := f.service.Refresh(context.Background())
	require.ErrorIs(t, err, appealerrors.ErrNoRefreshToken)
	require.Equal(t, 1, f.server.Count(http.MethodPost, "/auth/logout"))
	require.Zero(t, f.server.Count(http.MethodPost, "/auth/refresh"))
	require.Zero(t, f.store.Len())
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	f := newFixture(t)
	f.store.Seed(map[string]string{
		sessions.KeyAccessToken:  "a1",
		sessions.KeyRefreshToken: "r1",
		sessions.KeyUserRole:     "admin",
	})
	f.server.Handle("POST /auth/logout", apitest.Status(http.StatusInternalServerError, map[string]string{"error": "boom"}))

	require.NoError(t, f.service.Logout(context.Background()))
	require.Zero(t, f.store.Len())

	logout, ok := f.server.Last(http.MethodPost, "/auth/logout")
	require.True(t, ok)
	require.Equal(t, "Bearer a1", logout.Authorization)
}

func TestCurrentUser_RenewsExpiredSession(t *testing.T) {
	f := newFixture(t)
	f.store.Seed(map[string]string{
		sessions.KeyAccessToken:  "expired",
		sessions.KeyRefreshToken: "r1",
	})
	renewed := f.issue(t, jwtlib.MapClaims{"sub": testUserID})
	f.server.Handle("POST /auth/refresh", apitest.JSON(auth.TokenPair{AccessToken: renewed, RefreshToken: "r2"}))
	f.server.HandleProtected("GET /auth/me", apitest.JSON(map[string]any{
		"id":          testUserID,
		"email":       testEmail,
		"role":        "admin",
		"permissions": []any{map[string]any{"name": "cases:read"}, "cases:write"},
	}))

	profile, err := f.service.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, testUserID, profile.ID)
	require.Equal(t, auth.PermissionList{"cases:read", "cases:write"}, profile.Permissions)
	require.True(t, profile.Active())
	require.Equal(t, 1, f.server.Count(http.MethodPost, "/auth/refresh"))
	require.Equal(t, 2, f.server.Count(http.MethodGet, "/auth/me"))
	require.Equal(t, renewed, f.store.Values()[sessions.KeyAccessToken])
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	accessToken := f.issue(t, jwtlib.MapClaims{"sub": testUserID})
	f.store.Seed(map[string]string{sessions.KeyAccessToken: accessToken})
	f.server.HandleProtected("POST /auth/change-password", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "old-pass", body["currentPassword"])
		require.Equal(t, "new-pass", body["newPassword"])
		apitest.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
	})

	resp, err := f.service.ChangePassword(context.Background(), "old-pass", "new-pass")
	require.NoError(t, err)
	require.Equal(t, "Password changed", resp.Message)
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.False(t, f.service.IsAuthenticated(ctx), "nothing stored")

	f.store.Seed(map[string]string{sessions.KeyAccessToken: "h.e.s"})
	require.False(t, f.service.IsAuthenticated(ctx), "undecodable")

	expired := apitest.IssueToken(t, jwtlib.MapClaims{"sub": testUserID, "exp": time.Now().Add(-time.Minute).Unix()})
	f.store.Seed(map[string]string{sessions.KeyAccessToken: expired})
	require.False(t, f.service.IsAuthenticated(ctx), "expired")

	valid := apitest.IssueToken(t, jwtlib.MapClaims{"sub": testUserID})
	f.store.Seed(map[string]string{sessions.KeyAccessToken: valid})
	require.True(t, f.service.IsAuthenticated(ctx))
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.False(t, f.service.HasRole(ctx, ""), "no role stored")
	require.False(t, f.service.IsAdmin(ctx))

	f.store.Seed(map[string]string{sessions.KeyUserRole: "clerk", sessions.KeyPermissions: "cases:read, ocr:run"})
	role, err := f.service.Role(ctx)
	require.NoError(t, err)
	require.Equal(t, "clerk", role)
	require.True(t, f.service.HasRole(ctx, "clerk"))
	require.False(t, f.service.IsAdmin(ctx))

	permissions, err := f.service.Permissions(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"cases:read", "ocr:run"}, permissions)
}

func TestLogin_InvalidInputFailsLocally(t *testing.T) {
	f := newFixture(t)
	f.server.Handle("POST /auth/login", loginHandler(t, auth.TokenPair{AccessToken: "unused"}))

	_, err := f.service.Login(context.Background(), "not-an-email", testPassword)
	require.ErrorIs(t, err, appealerrors.ErrInvalidRequest)
	require.Zero(t, f.server.Count(http.MethodPost, "/auth/login"))
}

func TestProfile_Active(t *testing.T) {
	require.True(t, (&auth.Profile{}).Active())
	require.False(t, (&auth.Profile{IsActive: utils.Ptr(false)}).Active())
}

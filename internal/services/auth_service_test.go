package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/kv"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/mocks"
)

type authServiceFixture struct {
	svc      *AuthServiceImpl
	api      *mocks.MockBackendClient
	sessions *mocks.MockSessionStore
	tracker  *mocks.MockIdleTracker
	locks    *kv.MemoryStore
	provider *mocks.MockOAuthProvider
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		api:      mocks.NewMockBackendClient(),
		sessions: mocks.NewMockSessionStore(),
		tracker:  mocks.NewMockIdleTracker(),
		locks:    kv.NewMemoryStore(),
		provider: mocks.NewMockOAuthProvider("google"),
	}
	f.svc = NewAuthService(f.api, f.sessions, f.tracker, f.locks,
		[]domain.OAuthProvider{f.provider}, 10*time.Minute)
	return f
}

func TestAuthService_Login_RoutesByOnboardingState(t *testing.T) {
	tests := []struct {
		name      string
		state     domain.OnboardingState
		role      domain.Role
		wantRoute string
	}{
		{name: "ready student lands on drops", state: domain.OnboardingReady, role: domain.RoleStudent, wantRoute: domain.RouteDashboardDrops},
		{name: "ready educator lands on drops", state: domain.OnboardingReady, role: domain.RoleEducator, wantRoute: domain.RouteDashboardDrops},
		{name: "ready brand lands on profile", state: domain.OnboardingReady, role: domain.RoleBrand, wantRoute: domain.RouteDashboardProfile},
		{name: "ready creator lands on profile", state: domain.OnboardingReady, role: domain.RoleCreator, wantRoute: domain.RouteDashboardProfile},
		{name: "pending role resumes onboarding", state: domain.OnboardingPendingRole, role: domain.RoleStudent, wantRoute: domain.RouteOnboardingRole},
		{name: "pending birthdate resumes onboarding", state: domain.OnboardingPendingBirthdate, role: domain.RoleStudent, wantRoute: domain.RouteOnboardingBirthdate},
		{name: "pending phone resumes onboarding", state: domain.OnboardingPendingPhone, role: domain.RoleStudent, wantRoute: domain.RouteOnboardingPhone},
		{name: "pending guardian resumes onboarding", state: domain.OnboardingPendingGuardian, role: domain.RoleStudent, wantRoute: domain.RouteOnboardingGuardian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthServiceFixture()
			f.api.GetCurrentUserFunc = func(ctx context.Context, accessToken string) (*domain.User, error) {
				return &domain.User{ID: "u1", Role: tt.role, OnboardingState: tt.state}, nil
			}
			f.api.GetOnboardingStatusFunc = func(ctx context.Context, accessToken string) (domain.OnboardingState, error) {
				return tt.state, nil
			}

			route, err := f.svc.Login(context.Background(), "sess-1", "test@example.com", "password")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoute, route)

			rec := f.sessions.Record("sess-1")
			assert.Equal(t, "mock_access_token", rec.AccessToken)
			assert.Contains(t, f.tracker.Started, "sess-1")
		})
	}
}

func TestAuthService_Signup_FreshAccountGoesToDashboard(t *testing.T) {
	// Post-signup a READY state lands on the generic dashboard, not the role
	// home: the account was created seconds ago and has nothing to show yet.
	f := newAuthServiceFixture()
	f.api.GetOnboardingStatusFunc = func(ctx context.Context, accessToken string) (domain.OnboardingState, error) {
		return domain.OnboardingReady, nil
	}

	route, err := f.svc.Signup(context.Background(), "sess-1", "new@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, domain.RouteDashboard, route)
}

func TestAuthService_Login_FailureClearsState(t *testing.T) {
	f := newAuthServiceFixture()
	require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
		domain.TokenPair{AccessToken: "stale", RefreshToken: "stale"}))
	f.api.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		return nil, &domain.APIError{Status: 401, Message: "bad credentials"}
	}

	_, err := f.svc.Login(context.Background(), "sess-1", "test@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 401, domain.StatusOf(err))

	rec := f.sessions.Record("sess-1")
	assert.Empty(t, rec.AccessToken, "stale tokens must not survive a failed login")
	assert.Contains(t, f.tracker.Ended, "sess-1")
}

func TestAuthService_Logout_NeverFails(t *testing.T) {
	t.Run("remote failure still clears locally", func(t *testing.T) {
		f := newAuthServiceFixture()
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))
		f.api.LogoutFunc = func(ctx context.Context, accessToken string) error {
			return errors.New("upstream down")
		}

		err := f.svc.Logout(context.Background(), "sess-1")
		require.NoError(t, err)
		assert.Empty(t, f.sessions.Record("sess-1").AccessToken)
		assert.Contains(t, f.tracker.Ended, "sess-1")
	})

	t.Run("repeat logout is a no-op", func(t *testing.T) {
		f := newAuthServiceFixture()
		remoteCalls := 0
		f.api.LogoutFunc = func(ctx context.Context, accessToken string) error {
			remoteCalls++
			return nil
		}
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))

		require.NoError(t, f.svc.Logout(context.Background(), "sess-1"))
		require.NoError(t, f.svc.Logout(context.Background(), "sess-1"))
		assert.Equal(t, 1, remoteCalls, "second logout has no token to revoke")
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("rotates the stored pair", func(t *testing.T) {
		f := newAuthServiceFixture()
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "old_at", RefreshToken: "old_rt"}))

		require.NoError(t, f.svc.Refresh(context.Background(), "sess-1"))
		rec := f.sessions.Record("sess-1")
		assert.Equal(t, "new_mock_access_token", rec.AccessToken)
		assert.Equal(t, "new_mock_refresh_token", rec.RefreshToken)
	})

	t.Run("exchange failure forces logout", func(t *testing.T) {
		f := newAuthServiceFixture()
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "old_at", RefreshToken: "old_rt"}))
		f.api.RefreshTokenFunc = func(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
			return nil, &domain.APIError{Status: 401, Message: "refresh revoked"}
		}

		err := f.svc.Refresh(context.Background(), "sess-1")
		require.Error(t, err)
		assert.Empty(t, f.sessions.Record("sess-1").AccessToken)
	})

	t.Run("no session", func(t *testing.T) {
		f := newAuthServiceFixture()
		err := f.svc.Refresh(context.Background(), "sess-none")
		assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	t.Run("rejected token clears state once", func(t *testing.T) {
		f := newAuthServiceFixture()
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))
		f.api.GetCurrentUserFunc = func(ctx context.Context, accessToken string) (*domain.User, error) {
			return nil, &domain.APIError{Status: 401, Message: "token rejected"}
		}

		_, err := f.svc.CurrentUser(context.Background(), "sess-1")
		assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
		assert.Empty(t, f.sessions.Record("sess-1").AccessToken)

		// Second call finds no tokens; the remote API is not hit again.
		remoteCalls := 0
		f.api.GetCurrentUserFunc = func(ctx context.Context, accessToken string) (*domain.User, error) {
			remoteCalls++
			return nil, &domain.APIError{Status: 401}
		}
		_, err = f.svc.CurrentUser(context.Background(), "sess-1")
		assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
		assert.Zero(t, remoteCalls)
	})

	t.Run("transient failure keeps state", func(t *testing.T) {
		f := newAuthServiceFixture()
		require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
			domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))
		f.api.GetCurrentUserFunc = func(ctx context.Context, accessToken string) (*domain.User, error) {
			return nil, &domain.APIError{Status: 503, Message: "try later"}
		}

		_, err := f.svc.CurrentUser(context.Background(), "sess-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotLoggedIn)
		assert.Equal(t, "tok", f.sessions.Record("sess-1").AccessToken)
	})
}

func TestAuthService_PostAuthFlow_Reentrancy(t *testing.T) {
	f := newAuthServiceFixture()
	require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
		domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))

	// Simulate an in-flight run holding the guard.
	acquired, err := f.locks.SetNX(context.Background(), "postauth:sess-1", []byte("1"), time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.svc.PostAuthFlow(context.Background(), "sess-1", false)
	assert.ErrorIs(t, err, domain.ErrFlowInFlight)
}

func TestAuthService_PostAuthFlow_FetchFailureFallsBack(t *testing.T) {
	f := newAuthServiceFixture()
	require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
		domain.TokenPair{AccessToken: "tok", RefreshToken: "ref"}))
	f.api.GetOnboardingStatusFunc = func(ctx context.Context, accessToken string) (domain.OnboardingState, error) {
		return "", &domain.APIError{Status: 500, Message: "boom"}
	}

	route, err := f.svc.PostAuthFlow(context.Background(), "sess-1", false)
	require.NoError(t, err, "the user must never be stranded on a fetch failure")
	assert.Equal(t, domain.RouteDashboard, route)
	assert.Contains(t, f.tracker.Started, "sess-1", "idle tracking starts even on the fallback path")
}

func TestAuthService_OAuth_RoundTrip(t *testing.T) {
	f := newAuthServiceFixture()
	var capturedState string
	f.provider.AuthCodeURLFunc = func(state string) string {
		capturedState = state
		return "https://accounts.google.com/o/oauth2/auth?state=" + state
	}

	url, err := f.svc.BeginOAuth(context.Background(), "sess-1", "google", true)
	require.NoError(t, err)
	assert.Contains(t, url, capturedState)
	assert.True(t, f.sessions.Record("sess-1").SignupIntent)

	// Fresh signup completing through OAuth lands on the dashboard.
	route, err := f.svc.CompleteOAuth(context.Background(), "sess-1", capturedState, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, domain.RouteDashboard, route)
	assert.Equal(t, "mock_access_token", f.sessions.Record("sess-1").AccessToken)
}

func TestAuthService_OAuth_StateIsSingleUse(t *testing.T) {
	f := newAuthServiceFixture()
	var capturedState string
	f.provider.AuthCodeURLFunc = func(state string) string {
		capturedState = state
		return "https://provider/authorize?state=" + state
	}

	_, err := f.svc.BeginOAuth(context.Background(), "sess-1", "google", false)
	require.NoError(t, err)

	_, err = f.svc.CompleteOAuth(context.Background(), "sess-1", capturedState, "code")
	require.NoError(t, err)

	_, err = f.svc.CompleteOAuth(context.Background(), "sess-1", capturedState, "code")
	assert.ErrorIs(t, err, domain.ErrOAuthStateInvalid)
}

func TestAuthService_OAuth_DuplicateNotification(t *testing.T) {
	// The same backend tokens arriving twice means the first notification
	// already ran the post-auth flow; the duplicate must not run it again.
	f := newAuthServiceFixture()
	require.NoError(t, f.sessions.SaveTokens(context.Background(), "sess-1",
		domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"}))

	var capturedState string
	f.provider.AuthCodeURLFunc = func(state string) string {
		capturedState = state
		return "https://provider/authorize?state=" + state
	}
	_, err := f.svc.BeginOAuth(context.Background(), "sess-1", "google", false)
	require.NoError(t, err)

	_, err = f.svc.CompleteOAuth(context.Background(), "sess-1", capturedState, "code")
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestAuthService_BeginOAuth_UnknownProvider(t *testing.T) {
	f := newAuthServiceFixture()
	_, err := f.svc.BeginOAuth(context.Background(), "sess-1", "github", false)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

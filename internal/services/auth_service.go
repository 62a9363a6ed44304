package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/kv"
)

const (
	oauthStatePrefix   = "oauthstate:"
	postAuthLockPrefix = "postauth:"
	postAuthLockTTL    = 15 * time.Second
)

// AuthServiceImpl implements domain.AuthService. It owns the cached auth
// state per browser session and the post-authentication redirect decision.
type AuthServiceImpl struct {
	api       domain.BackendClient
	sessions  domain.SessionStore
	tracker   domain.IdleTracker
	locks     kv.Store
	providers map[string]domain.OAuthProvider
	stateTTL  time.Duration
}

// NewAuthService creates the auth service. locks backs both the post-auth
// re-entrancy guard and the OAuth continuation state.
func NewAuthService(
	api domain.BackendClient,
	sessions domain.SessionStore,
	tracker domain.IdleTracker,
	locks kv.Store,
	providers []domain.OAuthProvider,
	stateTTL time.Duration,
) *AuthServiceImpl {
	byName := make(map[string]domain.OAuthProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &AuthServiceImpl{
		api:       api,
		sessions:  sessions,
		tracker:   tracker,
		locks:     locks,
		providers: byName,
		stateTTL:  stateTTL,
	}
}

// Login implements domain.AuthService. On success the post-auth flow
// decides the landing route; on failure auth state is cleared and the
// error is returned for the caller's own messaging.
func (s *AuthServiceImpl) Login(ctx context.Context, sessionID, email, password string) (string, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.clearAuthState(ctx, sessionID)
		s.audit(domain.NewAuditEvent(domain.UserLoginFailureEvent, sessionID).WithEmail(email).WithError(err))
		return "", err
	}

	if err := s.sessions.SaveTokens(ctx, sessionID, domain.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return "", err
	}

	s.audit(domain.NewAuditEvent(domain.UserLoginEvent, sessionID).WithEmail(email))
	return s.postAuthOrFallback(ctx, sessionID, false)
}

// Signup implements domain.AuthService.
func (s *AuthServiceImpl) Signup(ctx context.Context, sessionID, email, password string) (string, error) {
	result, err := s.api.Signup(ctx, email, password)
	if err != nil {
		s.clearAuthState(ctx, sessionID)
		return "", err
	}

	if err := s.sessions.SaveTokens(ctx, sessionID, domain.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return "", err
	}

	s.audit(domain.NewAuditEvent(domain.UserSignupEvent, sessionID).WithEmail(email))
	return s.postAuthOrFallback(ctx, sessionID, true)
}

// BeginOAuth implements domain.AuthService: persists the continuation
// (provider + signup intent) server-side before the redirect discards all
// local context, then hands back the provider's consent URL.
func (s *AuthServiceImpl) BeginOAuth(ctx context.Context, sessionID, provider string, fromSignup bool) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", domain.ErrProviderNotFound
	}

	state, err := randomState()
	if err != nil {
		return "", err
	}

	cont := domain.OAuthContinuation{
		Provider:   provider,
		FromSignup: fromSignup,
		SessionID:  sessionID,
		ExpiresAt:  time.Now().Add(s.stateTTL),
	}
	data, err := json.Marshal(cont)
	if err != nil {
		return "", err
	}
	if err := s.locks.Set(ctx, oauthStatePrefix+state, data, s.stateTTL); err != nil {
		return "", err
	}

	// Belt and braces: the intent also lives on the session record in case
	// the continuation entry is lost before the callback lands.
	if err := s.sessions.SetSignupIntent(ctx, sessionID, fromSignup); err != nil {
		log.Printf("%s: session_id=%s error=%v", domain.OAuthFailureEvent, sessionID, err)
	}

	s.audit(domain.NewAuditEvent(domain.OAuthBeginEvent, sessionID))
	return p.AuthCodeURL(state), nil
}

// CompleteOAuth implements domain.AuthService: invoked by the redirect
// landing route. The state is single-use; the provider name recovered from
// it selects the backend exchange endpoint.
func (s *AuthServiceImpl) CompleteOAuth(ctx context.Context, sessionID, state, code string) (string, error) {
	cont, err := s.consumeState(ctx, state)
	if err != nil {
		return "", err
	}

	p, ok := s.providers[cont.Provider]
	if !ok {
		return "", domain.ErrProviderNotFound
	}

	providerToken, err := p.ExchangeCode(ctx, code)
	if err != nil {
		s.audit(domain.NewAuditEvent(domain.OAuthFailureEvent, sessionID).WithError(err))
		return "", err
	}

	var result *domain.AuthResult
	switch cont.Provider {
	case "google":
		result, err = s.api.GoogleAuth(ctx, providerToken)
	case "apple":
		result, err = s.api.AppleAuth(ctx, providerToken)
	default:
		return "", domain.ErrProviderNotFound
	}
	if err != nil {
		s.clearAuthState(ctx, sessionID)
		s.audit(domain.NewAuditEvent(domain.OAuthFailureEvent, sessionID).WithError(err))
		return "", err
	}

	// A duplicate notification for a token that is already stored has been
	// processed once; doing it again would double-run the post-auth flow.
	if pair, tokErr := s.sessions.Tokens(ctx, sessionID); tokErr == nil && pair.AccessToken == result.AccessToken {
		return "", domain.ErrAlreadyProcessed
	}

	if err := s.sessions.SaveTokens(ctx, sessionID, domain.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return "", err
	}

	fromSignup := cont.FromSignup
	if intent, intentErr := s.sessions.TakeSignupIntent(ctx, sessionID); intentErr == nil {
		fromSignup = fromSignup || intent
	}

	s.audit(domain.NewAuditEvent(domain.OAuthCompleteEvent, sessionID))
	return s.postAuthOrFallback(ctx, sessionID, fromSignup)
}

// Logout implements domain.AuthService: best-effort server invalidation,
// then unconditional local cleanup. Never fails, safe to repeat.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if pair, err := s.sessions.Tokens(ctx, sessionID); err == nil && pair.AccessToken != "" {
		if err := s.api.Logout(ctx, pair.AccessToken); err != nil {
			log.Printf("%s: server logout failed, clearing locally: session_id=%s error=%v",
				domain.UserLogoutEvent, sessionID, err)
		}
	}
	s.clearAuthState(ctx, sessionID)
	s.audit(domain.NewAuditEvent(domain.UserLogoutEvent, sessionID))
	return nil
}

// Refresh implements domain.AuthService: exchanges the stored refresh
// token; a failed exchange forces a logout.
func (s *AuthServiceImpl) Refresh(ctx context.Context, sessionID string) error {
	pair, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return err
	}

	fresh, err := s.api.RefreshToken(ctx, pair.RefreshToken)
	if err != nil {
		_ = s.Logout(ctx, sessionID)
		return err
	}

	if err := s.sessions.SaveTokens(ctx, sessionID, *fresh); err != nil {
		return err
	}
	s.audit(domain.NewAuditEvent(domain.TokenRefreshEvent, sessionID))
	return nil
}

// CurrentUser implements domain.AuthService: validates the persisted token
// against the remote API on cold start. A rejected token clears auth state
// once and reports not-logged-in; it never retries in a loop.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	pair, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.api.GetCurrentUser(ctx, pair.AccessToken)
	if err != nil {
		if domain.IsUnauthenticated(err) {
			s.clearAuthState(ctx, sessionID)
			return nil, domain.ErrNotLoggedIn
		}
		return nil, err
	}
	return user, nil
}

// PostAuthFlow implements domain.AuthService. It is idempotent and
// non-reentrant: a second trigger while one run is in flight (a duplicate
// OAuth notification, a double-submitted form) is a no-op. The user must
// never be stranded, so any fetch failure falls back to the generic
// dashboard route.
func (s *AuthServiceImpl) PostAuthFlow(ctx context.Context, sessionID string, fromSignup bool) (string, error) {
	acquired, err := s.locks.SetNX(ctx, postAuthLockPrefix+sessionID, []byte("1"), postAuthLockTTL)
	if err == nil && !acquired {
		return "", domain.ErrFlowInFlight
	}
	defer func() {
		_ = s.locks.Delete(ctx, postAuthLockPrefix+sessionID)
	}()

	pair, err := s.sessions.Tokens(ctx, sessionID)
	if err != nil {
		return domain.RouteDashboard, nil
	}

	var (
		wg       sync.WaitGroup
		user     *domain.User
		state    domain.OnboardingState
		userErr  error
		stateErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = s.api.GetCurrentUser(ctx, pair.AccessToken)
	}()
	go func() {
		defer wg.Done()
		state, stateErr = s.api.GetOnboardingStatus(ctx, pair.AccessToken)
	}()
	wg.Wait()

	s.tracker.Start(sessionID)

	if userErr != nil || stateErr != nil {
		return domain.RouteDashboard, nil
	}

	if state == domain.OnboardingReady {
		if fromSignup {
			return domain.RouteDashboard, nil
		}
		return domain.HomeRouteForRole(user.Role), nil
	}
	return domain.RouteForState(state), nil
}

// postAuthOrFallback treats a lost re-entrancy race as benign: the winning
// run already decided the route, the loser just goes to the dashboard.
func (s *AuthServiceImpl) postAuthOrFallback(ctx context.Context, sessionID string, fromSignup bool) (string, error) {
	route, err := s.PostAuthFlow(ctx, sessionID, fromSignup)
	if err == domain.ErrFlowInFlight {
		return domain.RouteDashboard, nil
	}
	return route, err
}

func (s *AuthServiceImpl) consumeState(ctx context.Context, state string) (*domain.OAuthContinuation, error) {
	data, err := s.locks.Get(ctx, oauthStatePrefix+state)
	if err != nil {
		return nil, domain.ErrOAuthStateInvalid
	}
	_ = s.locks.Delete(ctx, oauthStatePrefix+state)

	var cont domain.OAuthContinuation
	if err := json.Unmarshal(data, &cont); err != nil {
		return nil, domain.ErrOAuthStateInvalid
	}
	if time.Now().After(cont.ExpiresAt) {
		return nil, domain.ErrOAuthStateInvalid
	}
	return &cont, nil
}

// clearAuthState drops tokens and stops the idle timer. Every path through
// it is idempotent.
func (s *AuthServiceImpl) clearAuthState(ctx context.Context, sessionID string) {
	if err := s.sessions.ClearTokens(ctx, sessionID); err != nil {
		log.Printf("AUTH_STATE_CLEAR_FAILED: session_id=%s error=%v", sessionID, err)
	}
	s.tracker.End(sessionID)
}

func (s *AuthServiceImpl) audit(event *domain.AuditEvent) {
	if event.Success {
		log.Printf("%s: session_id=%s email=%s timestamp=%s",
			event.EventType, event.SessionID, event.Email, event.Timestamp.Format(time.RFC3339))
		return
	}
	log.Printf("%s: session_id=%s email=%s error=%s timestamp=%s",
		event.EventType, event.SessionID, event.Email, event.ErrorMsg, event.Timestamp.Format(time.RFC3339))
}

func randomState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

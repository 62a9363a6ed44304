package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/config"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/handlers"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/http/middleware"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/auth"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/backend"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/kv"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/oauth"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/sessions"
	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/services"
)

// Container holds all dependencies, composed once at application root.
type Container struct {
	Config *config.Config

	RedisClient *redis.Client

	Backend   domain.BackendClient
	Sessions  domain.SessionStore
	Tracker   domain.IdleTracker
	AuthSvc   domain.AuthService
	FlowSvc   domain.SignupFlowService
	DropData  domain.DropDataStore
	Inspector domain.TokenInspector

	AuthHandlers     *handlers.AuthHandlers
	SignupHandlers   *handlers.SignupHandlers
	DropHandlers     *handlers.DropHandlers
	GuardianHandlers *handlers.GuardianHandlers

	SessionMW *middleware.SessionCookieMW
	AuthMW    *middleware.AuthMW
	CasbinMW  *middleware.CasbinMW
}

// NewContainer creates and initialises all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	c.Backend = backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	c.Sessions = sessions.NewRedisStore(c.RedisClient, cfg.RecordTTL)
	c.Tracker = services.NewSessionTracker(c.Sessions, cfg.IdleTTL)
	c.Inspector = auth.NewJWTInspector(cfg.JWTSecret, cfg.JWTIssuer)

	locks := kv.NewRedisStore(c.RedisClient, "gw:")
	providers := []domain.OAuthProvider{
		oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL),
		oauth.NewAppleProvider(cfg.Apple.ClientID, cfg.Apple.ClientSecret, cfg.Apple.RedirectURL),
	}
	c.AuthSvc = services.NewAuthService(c.Backend, c.Sessions, c.Tracker, locks, providers, cfg.OAuthStateTTL)
	c.FlowSvc = services.NewSignupFlow(c.Backend, c.Sessions)

	// Scratch data: Redis primary, in-process memory as the fallback tier
	// that keeps the funnel alive through a Redis hiccup.
	scratchTiers := kv.NewTiered(cfg.ScratchTTL,
		kv.NewRedisStore(c.RedisClient, "scratch:"),
		kv.NewMemoryStore(),
	)
	c.DropData = services.NewDropDataService(scratchTiers)

	cas, err := auth.NewCasbinService(cfg.CasbinModel)
	if err != nil {
		return nil, err
	}

	c.AuthHandlers = handlers.NewAuthHandlers(c.AuthSvc)
	c.SignupHandlers = handlers.NewSignupHandlers(c.FlowSvc, c.AuthSvc)
	c.DropHandlers = handlers.NewDropHandlers(c.Backend, c.DropData)
	c.GuardianHandlers = handlers.NewGuardianHandlers(c.Backend)

	c.SessionMW = middleware.NewSessionCookieMW(c.Sessions, cfg.CookieName, cfg.CookieSecure, int(cfg.RecordTTL.Seconds()))
	c.AuthMW = middleware.NewAuthMW(c.Sessions, c.Inspector, c.Tracker)
	c.CasbinMW = middleware.NewCasbinMW(cas.E)

	return c, nil
}

// Close closes all connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

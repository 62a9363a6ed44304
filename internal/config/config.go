package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	IdleTTL    string `yaml:"idle_ttl"`
	RecordTTL  string `yaml:"record_ttl"`
	ScratchTTL string `yaml:"scratch_ttl"`
	Secure     bool   `yaml:"secure"`
}

type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type OAuthConfig struct {
	Google   OAuthProviderConfig `yaml:"google"`
	Apple    OAuthProviderConfig `yaml:"apple"`
	StateTTL string              `yaml:"state_ttl"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Backend BackendConfig `yaml:"backend"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	OAuth   OAuthConfig   `yaml:"oauth"`
	JWT     JWTConfig     `yaml:"jwt"`
	Casbin  CasbinConfig  `yaml:"casbin"`
}

type Config struct {
	Port           string
	GinMode        string
	BaseURL        string
	BackendBaseURL string
	BackendTimeout time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CookieName     string
	CookieSecure   bool
	IdleTTL        time.Duration
	RecordTTL      time.Duration
	ScratchTTL     time.Duration
	OAuthStateTTL  time.Duration
	Google         OAuthProviderConfig
	Apple          OAuthProviderConfig
	JWTSecret      string
	JWTIssuer      string
	CasbinModel    string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, with env overrides for secrets.
func Load() (*Config, error) {
	path := env("G3MS_CONFIG", "config/config.yml")
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	backendTimeout, err := time.ParseDuration(configFile.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid backend timeout: %w", err)
	}

	idleTTL, err := time.ParseDuration(configFile.Session.IdleTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session idle TTL: %w", err)
	}

	recordTTL, err := time.ParseDuration(configFile.Session.RecordTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session record TTL: %w", err)
	}

	scratchTTL, err := time.ParseDuration(configFile.Session.ScratchTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid scratch TTL: %w", err)
	}

	stateTTL, err := time.ParseDuration(configFile.OAuth.StateTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth state TTL: %w", err)
	}

	google := configFile.OAuth.Google
	google.ClientSecret = env("G3MS_GOOGLE_CLIENT_SECRET", google.ClientSecret)
	apple := configFile.OAuth.Apple
	apple.ClientSecret = env("G3MS_APPLE_CLIENT_SECRET", apple.ClientSecret)

	return &Config{
		Port:           fmt.Sprintf("%d", configFile.App.Port),
		GinMode:        configFile.App.GinMode,
		BaseURL:        configFile.App.BaseURL,
		BackendBaseURL: env("G3MS_BACKEND_URL", configFile.Backend.BaseURL),
		BackendTimeout: backendTimeout,
		RedisAddr:      env("G3MS_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:  env("G3MS_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:        configFile.Redis.DB,
		CookieName:     configFile.Session.CookieName,
		CookieSecure:   configFile.Session.Secure,
		IdleTTL:        idleTTL,
		RecordTTL:      recordTTL,
		ScratchTTL:     scratchTTL,
		OAuthStateTTL:  stateTTL,
		Google:         google,
		Apple:          apple,
		JWTSecret:      env("G3MS_JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:      configFile.JWT.Issuer,
		CasbinModel:    configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// Package sessions persists per-browser-session state in Redis: the token
// pair issued by the remote API, the CSRF token, the OAuth signup intent
// and the idle-timeout marker.
package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// RedisStore implements domain.SessionStore.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a session store. ttl bounds how long an idle
// browser session record survives.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "websess:", ttl: ttl}
}

func (s *RedisStore) load(ctx context.Context, sessionID string) (*domain.SessionRecord, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err == redis.Nil {
		return &domain.SessionRecord{CreatedAt: time.Now()}, nil
	}
	if err != nil {
		return nil, err
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) save(ctx context.Context, sessionID string, rec *domain.SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err()
}

// SaveTokens implements domain.SessionStore.
func (s *RedisStore) SaveTokens(ctx context.Context, sessionID string, pair domain.TokenPair) error {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	rec.AccessToken = pair.AccessToken
	rec.RefreshToken = pair.RefreshToken
	rec.TimedOut = false
	return s.save(ctx, sessionID, rec)
}

// Tokens implements domain.SessionStore. Returns domain.ErrNotLoggedIn when
// no access token is stored.
func (s *RedisStore) Tokens(ctx context.Context, sessionID string) (domain.TokenPair, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if rec.AccessToken == "" {
		return domain.TokenPair{}, domain.ErrNotLoggedIn
	}
	return domain.TokenPair{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}, nil
}

// ClearTokens implements domain.SessionStore. Safe to call repeatedly and
// with no tokens present.
func (s *RedisStore) ClearTokens(ctx context.Context, sessionID string) error {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if rec.AccessToken == "" && rec.RefreshToken == "" {
		return nil
	}
	rec.AccessToken = ""
	rec.RefreshToken = ""
	return s.save(ctx, sessionID, rec)
}

// EnsureCSRF implements domain.SessionStore: returns the stored CSRF token,
// minting one when absent. Tokens are 32 random bytes, hex-encoded.
func (s *RedisStore) EnsureCSRF(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if rec.CSRFToken != "" {
		return rec.CSRFToken, nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	rec.CSRFToken = hex.EncodeToString(raw)
	if err := s.save(ctx, sessionID, rec); err != nil {
		return "", err
	}
	return rec.CSRFToken, nil
}

// CSRF implements domain.SessionStore.
func (s *RedisStore) CSRF(ctx context.Context, sessionID string) (string, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return rec.CSRFToken, nil
}

// SetSignupIntent implements domain.SessionStore. The flag records whether
// an OAuth redirect began from a signup gesture, since the redirect
// discards any in-memory context.
func (s *RedisStore) SetSignupIntent(ctx context.Context, sessionID string, fromSignup bool) error {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	rec.SignupIntent = fromSignup
	return s.save(ctx, sessionID, rec)
}

// TakeSignupIntent implements domain.SessionStore: reads and clears the flag.
func (s *RedisStore) TakeSignupIntent(ctx context.Context, sessionID string) (bool, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	intent := rec.SignupIntent
	if intent {
		rec.SignupIntent = false
		if err := s.save(ctx, sessionID, rec); err != nil {
			return false, err
		}
	}
	return intent, nil
}

// MarkTimeout implements domain.SessionStore: clears tokens and the CSRF
// token and stamps the record so the next request can redirect to the
// login screen with a timeout reason.
func (s *RedisStore) MarkTimeout(ctx context.Context, sessionID string) error {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	rec.AccessToken = ""
	rec.RefreshToken = ""
	rec.CSRFToken = ""
	rec.TimedOut = true
	return s.save(ctx, sessionID, rec)
}

// ConsumeTimeout implements domain.SessionStore: reads and clears the
// timeout marker.
func (s *RedisStore) ConsumeTimeout(ctx context.Context, sessionID string) (bool, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	timedOut := rec.TimedOut
	if timedOut {
		rec.TimedOut = false
		if err := s.save(ctx, sessionID, rec); err != nil {
			return false, err
		}
	}
	return timedOut, nil
}
